package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
	Name     string
	Encoding string
}

// ImportOutput describes an imported dictionary.
type ImportOutput struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Encoding  string `json:"encoding"`
	WordCount int    `json:"word_count"`
	Database  string `json:"database"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <dictionary-file>",
		Short: "Import a dictionary file into SQLite",
		Long: `Load a dictionary file and store its words in a SQLite database.

The file is decompressed by extension (.gz, .zst, .lz4) and decoded
with the given encoding. Importing under an existing name replaces that
dictionary. Searches read the imported words with --db and --name, or
with database and dictionary.name in the configuration.

Examples:
  jisho import words.txt --db jisho.db
  jisho import words.sjis.gz --db jisho.db --encoding shift_jis --name sjis`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "dictionary name (default from configuration)")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "text encoding (default from configuration)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	cfg, err := opts.settings()
	if err != nil {
		return err
	}
	name := cfg.Dictionary.Name
	if opts.Name != "" {
		name = opts.Name
	}
	encoding := cfg.Dictionary.Encoding
	if opts.Encoding != "" {
		encoding = opts.Encoding
	}

	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	d, err := dict.Load(path, encoding)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load dictionary", err)
	}
	f.VerboseLog("Loaded %d words from %s", d.Len(), path)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	imported, err := st.ImportWords(ctx, name, path, encoding, d.Words())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to import dictionary", err)
	}

	if opts.Verbose {
		hist, err := st.LengthHistogram(ctx, name)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read length histogram", err)
		}
		for _, n := range slices.Sorted(maps.Keys(hist)) {
			f.VerboseLog("  length %2d: %d words", n, hist[n])
		}
	}

	out := ImportOutput{
		Name:      imported.Name,
		Source:    imported.Source,
		Encoding:  imported.Encoding,
		WordCount: imported.WordCount,
		Database:  opts.Database,
	}
	if opts.Format == "json" {
		return f.Success(out)
	}
	return f.Success(fmt.Sprintf("Imported %d words into %q (%s)", out.WordCount, out.Name, out.Database))
}
