package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/config"
	"github.com/leonfyr/jisho/internal/i18n"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a jisho.cue file
	Lang    string // overrides the configured language
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the jisho CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jisho",
		Short: "jisho - kana dictionary search",
		Long: `Search a Japanese word list with a compact pattern language.

Patterns combine kana, wildcards (? and *), gojuon classes in [],
lengths in {}, anagrams in <>, boolean operators (& | !) and, across
several ';'-separated slots, shared variables A-Z.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "configuration file (default ./"+config.DefaultFile+" if present)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "", "message language (en|ja|zh)")

	// Add subcommands
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewDictsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// settings resolves the configuration file and applies the global
// flag overrides.
func (o *RootOptions) settings() (config.Config, error) {
	cfg, err := config.LoadOrDefault(o.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if o.Lang != "" {
		cfg.Language = o.Lang
	}
	return cfg, nil
}

// catalog loads the message catalog for cfg.
func (o *RootOptions) catalog(cfg config.Config) (*i18n.Catalog, error) {
	c, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load messages", err)
	}
	return c, nil
}

// logger writes to w; Debug level when verbose, Warn otherwise so that
// per-search records stay out of normal output.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
