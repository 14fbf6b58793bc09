package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/fbskema/feedback"
)

func newSchemasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List registered schema names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range feedback.Schemas() {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Description)
			}
			return tw.Flush()
		},
	}
}

func newJSONSchemaCommand(a *app) *cobra.Command {
	var schema string
	cmd := &cobra.Command{
		Use:   "jsonschema --schema <name>",
		Short: "Print the JSON Schema of a registered schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := feedback.Lookup(schema)
			if !ok {
				return fmt.Errorf("unknown schema %q (see 'fbskema schemas')", schema)
			}
			js, err := entry.JSONSchema()
			if err != nil {
				return fmt.Errorf("project %s: %w", schema, err)
			}
			return writeJSON(cmd.OutOrStdout(), js)
		},
	}
	cmd.Flags().StringVarP(&schema, "schema", "s", "", "schema name")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newMetadataQueryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata-query <name:value>...",
		Short: "Parse metadata filter strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := make([]any, len(args))
			for i, s := range args {
				raw[i] = s
			}
			p, err := feedback.MetadataQueryParamsSchema().Parse(a.cfg.Context(cmd.Context()), map[string]any{"metadata": raw})
			if err != nil {
				return reportIssues(cmd, a, "metadata_query_params", err)
			}
			return writeJSON(cmd.OutOrStdout(), p.Parsed())
		},
	}
}
