package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/i18n"
	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/search"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	DictionaryFlags
	Limit int
}

// QueryOutput is the outcome of one query.
type QueryOutput struct {
	Query   string   `json:"query"`
	Count   int      `json:"count"`
	Results []string `json:"results"`
	Seconds float64  `json:"seconds"`

	// Kind and Message are set when the query failed.
	Kind    string `json:"kind,omitempty"`
	Context string `json:"context,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether the query produced an error.
func (q QueryOutput) Failed() bool {
	return q.Message != ""
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the dictionary",
		Long: `Search the dictionary with one query.

A query without ';' matches single words. A query with ';' is a
multi-slot query: every slot matches one word, and shared variables
(A-Z) must take the same value in every slot. |X|=n fixes the length
of variable X.

Exit codes:
  0 - Query ran (including no results)
  1 - Query rejected or timed out
  2 - Command error (dictionary not found, bad configuration, etc.)

Examples:
  jisho search 'あ?い'
  jisho search '?[k]*{3}' --limit 50
  jisho search 'Aい;かA;|A|=1' --dict words.txt.zst
  jisho search '<くまる>' --db jisho.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], cmd)
		},
	}

	opts.DictionaryFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results (default from configuration)")

	return cmd
}

func runSearch(opts *SearchOptions, query string, cmd *cobra.Command) error {
	cfg, err := opts.settings()
	if err != nil {
		return err
	}
	opts.apply(&cfg)

	catalog, err := opts.catalog(cfg)
	if err != nil {
		return err
	}
	logger := opts.logger(cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	d, err := LoadDictionary(ctx, cfg, logger)
	if err != nil {
		return err
	}
	s := newSearcher(cfg, d, logger, nil)

	out := runQuery(ctx, s, catalog, query, opts.Limit)
	if opts.Format == "json" {
		f := opts.formatter(cmd)
		var err error
		if out.Failed() {
			err = f.Error(ErrCodeQuery, out.Message, out.details(), out)
		} else {
			err = f.Success(out)
		}
		if err != nil {
			return err
		}
	} else {
		WriteResults(cmd.OutOrStdout(), query, out.Results, seconds(out.Seconds), out.Message)
	}

	if out.Failed() {
		return NewExitError(ExitFailure, out.Message)
	}
	return nil
}

// runQuery runs one query and renders any query error with catalog.
func runQuery(ctx context.Context, s *search.Searcher, catalog *i18n.Catalog, query string, limit int) QueryOutput {
	start := time.Now()
	results, err := s.Search(ctx, query, limit)
	out := QueryOutput{
		Query:   query,
		Count:   len(results),
		Results: results,
		Seconds: time.Since(start).Seconds(),
	}
	if err != nil {
		out.Results = []string{}
		out.Message = catalog.Format(err)
		var qe *ir.QueryError
		if errors.As(err, &qe) {
			out.Kind = string(qe.Kind)
			out.Context = qe.Context
		}
	}
	return out
}

// details is the CLIError payload of a failed query.
func (o QueryOutput) details() map[string]string {
	return map[string]string{"kind": o.Kind, "context": o.Context}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
