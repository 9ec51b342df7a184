package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/store"
)

// DictsOptions holds flags for the dicts command.
type DictsOptions struct {
	*RootOptions
	Database string
}

// NewDictsCommand creates the dicts command.
func NewDictsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DictsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dicts",
		Short: "List imported dictionaries",
		Long: `List the dictionaries stored in a SQLite database.

Example:
  jisho dicts --db jisho.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDicts(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDicts(opts *DictsOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	dicts, err := st.ListDictionaries(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list dictionaries", err)
	}

	out := make([]ImportOutput, 0, len(dicts))
	for _, d := range dicts {
		out = append(out, ImportOutput{
			Name:      d.Name,
			Source:    d.Source,
			Encoding:  d.Encoding,
			WordCount: d.WordCount,
			Database:  opts.Database,
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(out)
	}

	w := cmd.OutOrStdout()
	if len(out) == 0 {
		fmt.Fprintln(w, "No dictionaries.")
		return nil
	}
	for _, d := range out {
		fmt.Fprintf(w, "%s\t%d words\t%s (%s)\n", d.Name, d.WordCount, d.Source, d.Encoding)
	}
	return nil
}
