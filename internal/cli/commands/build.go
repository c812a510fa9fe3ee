package commands

import (
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/leapstack-labs/dbtgen/internal/generate"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the project from a declaration spec",
		Long: `Generate a dbt project from the declaration spec (dbtgen.yaml).

The project is scaffolded first, then the static source manifest is written
if the spec declares sources, then every declared model is rendered into
models/<layer>/<name>.sql. Model SQL may be inline (sql) or referenced
(sql_file, resolved relative to the spec file).`,
		Example: `  # Generate from ./dbtgen.yaml
  dbtgen build

  # Generate from another spec
  dbtgen build --config ./specs/acme.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	return cmd
}

func runBuild(cmd *cobra.Command) error {
	cfg := getConfig(cmd)
	r := newRenderer(cmd)

	spec, err := generate.LoadSpec(cfg.SpecPath)
	if err != nil {
		return err
	}

	g := &generate.Generator{Logger: getLogger(cmd)}
	res, err := g.Run(cmd.Context(), spec, cfg.SpecDir())
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"run_id":      res.RunID,
			"project_dir": res.ProjectDir,
			"files":       relativeFiles(res.ProjectDir, res.Files),
		})
	}

	for _, f := range relativeFiles(res.ProjectDir, res.Files) {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success(fmt.Sprintf("Generated project %q (%d files)", spec.Project.Name, len(res.Files)))
	return nil
}

// relativeFiles rewrites paths relative to the project directory for display.
func relativeFiles(projectDir string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if rel, err := filepath.Rel(projectDir, f); err == nil {
			out = append(out, rel)
		} else {
			out = append(out, f)
		}
	}
	return out
}
