package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/leapstack-labs/dbtgen/internal/generate"
	"github.com/leapstack-labs/dbtgen/internal/source"
	"github.com/spf13/cobra"
)

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Generate the source manifest by introspecting the target database",
		Long: `Generate models/sources.yml by introspecting the declared source tables.

The spec's introspect section names the target database and the schemas and
tables to inspect. For every table, column names and types are read from the
catalog; primary-key columns get unique and not_null tests. Declared
overrides (description, freshness, loaded_at_field) win over introspected
and default values.`,
		Example: `  # Introspect using ./dbtgen.yaml
  dbtgen sources

  # Introspect using another spec
  dbtgen sources --config ./specs/acme.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd)
		},
	}

	return cmd
}

func runSources(cmd *cobra.Command) error {
	cfg := getConfig(cmd)
	r := newRenderer(cmd)

	spec, err := generate.LoadSpec(cfg.SpecPath)
	if err != nil {
		return err
	}

	g := &generate.Generator{Logger: getLogger(cmd)}
	res, err := g.RunSources(cmd.Context(), spec)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"run_id":      res.RunID,
			"project_dir": res.ProjectDir,
			"manifest":    res.Manifest,
		})
	}

	r.Println(sourcesSummaryTable(res.Manifest, r.EffectiveMode() == output.ModeMarkdown))
	r.Println("")
	r.Success(fmt.Sprintf("Source manifest written to %s", res.Files[0]))
	return nil
}

// sourcesSummaryTable renders a per-table discovery summary.
func sourcesSummaryTable(m *source.Manifest, markdown bool) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Source", "Table", "Columns", "Tested Columns"})

	for _, src := range m.Sources {
		for _, tbl := range src.Tables {
			tested := 0
			for _, col := range tbl.Columns {
				if len(col.Tests) > 0 {
					tested++
				}
			}
			t.AppendRow(table.Row{src.Name, tbl.Name, len(tbl.Columns), tested})
		}
	}

	if markdown {
		return t.RenderMarkdown()
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
