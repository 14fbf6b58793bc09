// Package cli implements the fbskema command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/fbskema/i18n"
	"github.com/reoring/fbskema/internal/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrInvalid is returned when a payload fails validation. The issues have
// already been printed; callers only need the exit status.
var ErrInvalid = errors.New("payload is invalid")

type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "fbskema",
		Short: "Validate annotation dataset payloads",
		Long: `fbskema validates dataset, question, metadata, record, response and
suggestion payloads and reports every issue with its JSON Pointer path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			i18n.SetLanguage(cfg.Language)
			a.log = newLogger(cmd.ErrOrStderr(), a.verbose)
			a.log.Debug("config loaded", zap.Any("config", cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./fbskema.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newJSONSchemaCommand(a))
	rootCmd.AddCommand(newSchemasCommand())
	rootCmd.AddCommand(newMetadataQueryCommand(a))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	encCfg := zap.NewProductionEncoderConfig()
	enc := zapcore.NewJSONEncoder(encCfg)
	if verbose {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fbskema version: %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
