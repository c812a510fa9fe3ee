package commands

import (
	"github.com/leapstack-labs/dbtgen/internal/project"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init <project-name>",
		Short: "Scaffold a new dbt project",
		Long: `Scaffold a new dbt project with the standard directory layout.

This creates:
  - models/ with staging/, intermediate/ and mart/ subdirectories
  - seeds/, macros/, tests/, analyses/, snapshots/ and docs/ directories
  - dbt_project.yml with per-layer materialization defaults
  - packages.yml with the default package dependency
  - .gitignore for dbt build artifacts

Scaffolding is idempotent: existing directories are kept and manifest files
are rewritten in full.`,
		Example: `  # Scaffold ./acme
  dbtgen init acme

  # Scaffold under a different root
  dbtgen init acme --dir ./build`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Root directory to scaffold the project under")

	return cmd
}

func runInit(cmd *cobra.Command, name, dir string) error {
	r := newRenderer(cmd)

	projectDir, err := project.Scaffold(project.Config{Name: name, Root: dir})
	if err != nil {
		return err
	}

	for _, entry := range project.Entries() {
		r.StatusLine(entry, "success", "")
	}

	r.Println("")
	r.Success("dbt project scaffolded at " + projectDir)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Declare models and sources in dbtgen.yaml")
	r.Println("  2. Run 'dbtgen build' to render model files")
	r.Println("  3. Run 'dbtgen sources' to introspect source tables")

	return nil
}
