package cli

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/search"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	DictionaryFlags
	Limit      int
	MetricsOut string // prometheus textfile written after the run
}

// BatchResult holds the outcome of every query in a batch.
type BatchResult struct {
	Queries []QueryOutput `json:"queries"`
	Total   int           `json:"total"`
	Failed  int           `json:"failed"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <query-file-glob>...",
		Short: "Run queries from files",
		Long: `Run every query listed in the matching files against one dictionary.

Query files hold one query per line. Blank lines and lines starting
with '#' are skipped. Patterns support ** for recursive matching.
Queries share one result cache, so repeated queries are answered
without searching again.

Exit codes:
  0 - All queries ran
  1 - One or more queries were rejected or timed out
  2 - Command error (no files matched, dictionary not found, etc.)

Examples:
  jisho batch queries.txt
  jisho batch 'puzzles/**/*.txt' --metrics-out jisho.prom
  jisho batch queries.txt --format json --limit 20`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args, cmd)
		},
	}

	opts.DictionaryFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results per query (default from configuration)")
	cmd.Flags().StringVar(&opts.MetricsOut, "metrics-out", "", "write search metrics to this file in prometheus text format")

	return cmd
}

func runBatch(opts *BatchOptions, patterns []string, cmd *cobra.Command) error {
	files, err := expandGlobs(patterns)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid pattern", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no query files match %v", patterns))
	}

	queries, err := readQueries(files)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read queries", err)
	}

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

	reg := prometheus.NewRegistry()
	s := newSearcher(cfg, d, logger, search.NewMetrics(reg))

	f := opts.formatter(cmd)
	f.VerboseLog("Running %d queries from %d files", len(queries), len(files))

	result := BatchResult{
		Queries: make([]QueryOutput, 0, len(queries)),
		Total:   len(queries),
	}
	for _, q := range queries {
		out := runQuery(ctx, s, catalog, q, opts.Limit)
		if out.Failed() {
			result.Failed++
		}
		result.Queries = append(result.Queries, out)
		if opts.Format != "json" {
			WriteResults(cmd.OutOrStdout(), q, out.Results, seconds(out.Seconds), out.Message)
		}
	}

	if opts.MetricsOut != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsOut, reg); err != nil {
			return WrapExitError(ExitCommandError, "failed to write metrics", err)
		}
		f.VerboseLog("Metrics written to %s", opts.MetricsOut)
	}

	if result.Failed == 0 {
		if opts.Format == "json" {
			return f.Success(result)
		}
		return nil
	}

	message := fmt.Sprintf("%d of %d queries failed", result.Failed, result.Total)
	if opts.Format == "json" {
		if err := f.Error(ErrCodeQuery, message, nil, result); err != nil {
			return err
		}
	}
	return NewExitError(ExitFailure, message)
}

// expandGlobs resolves each pattern to files, keeping pattern order and
// dropping duplicates. A pattern without glob metacharacters names a
// file directly.
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			if _, err := os.Stat(p); err != nil {
				return nil, err
			}
			if !slices.Contains(files, p) {
				files = append(files, p)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", p, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if !slices.Contains(files, m) {
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// readQueries returns the non-blank, non-comment lines of files.
func readQueries(files []string) ([]string, error) {
	var queries []string
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			queries = append(queries, line)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return queries, nil
}
