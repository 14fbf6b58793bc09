package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/feedback"
	"github.com/reoring/fbskema/middleware"
)

func newValidateCommand(a *app) *cobra.Command {
	var schema, format string
	cmd := &cobra.Command{
		Use:   "validate --schema <name> [file|-]",
		Short: "Validate a JSON or YAML payload against a registered schema",
		Long: `Parse a payload and print the typed value as JSON. On failure every
issue is printed and the command exits with status 1.

Reads standard input when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := feedback.Lookup(schema)
			if !ok {
				return fmt.Errorf("unknown schema %q (see 'fbskema schemas')", schema)
			}
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			in, err := openInput(cmd, name)
			if err != nil {
				return err
			}
			defer in.Close()

			if format == "" {
				format = formatOf(name)
			}
			var wire any
			switch format {
			case "json":
				wire, err = fbskema.DecodeWire(fbskema.JSONReader(in), a.cfg.ParseOpt())
			case "yaml":
				wire, err = decodeYAML(in, a.cfg.MaxBytes)
			default:
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}
			var v any
			if err == nil {
				v, err = entry.Parse(a.cfg.Context(cmd.Context()), wire)
			}
			if err != nil {
				return reportIssues(cmd, a, schema, err)
			}
			a.log.Debug("payload accepted", zap.String("schema", schema), zap.String("input", name))
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&schema, "schema", "s", "", "schema name")
	cmd.Flags().StringVarP(&format, "format", "f", "", "payload format: json or yaml (default from file extension)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open payload: %w", err)
	}
	return f, nil
}

// decodeYAML enforces maxBytes the way the JSON path does: an oversized
// document is a truncated issue, and zero disables the cap.
func decodeYAML(r io.Reader, maxBytes int64) (any, error) {
	if maxBytes <= 0 {
		return feedback.DecodeYAML(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fbskema.Issues{{Path: "/", Code: fbskema.CodeTruncated, Message: "max bytes exceeded",
			Params: map[string]any{"max_bytes": maxBytes}}}
	}
	return feedback.DecodeYAML(bytes.NewReader(data))
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// reportIssues prints the issues carried by err and returns ErrInvalid.
// Other errors are returned unchanged.
func reportIssues(cmd *cobra.Command, a *app, schema string, err error) error {
	iss, ok := fbskema.AsIssues(err)
	if !ok {
		return err
	}
	a.log.Info("payload rejected", zap.String("schema", schema), zap.Int("issues", len(iss)))
	if werr := writeJSON(cmd.OutOrStdout(), middleware.ErrorPayload(iss)); werr != nil {
		return werr
	}
	return ErrInvalid
}
