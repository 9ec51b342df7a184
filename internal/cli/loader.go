package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leonfyr/jisho/internal/config"
	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/search"
	"github.com/leonfyr/jisho/internal/store"
)

// DictionaryFlags select the word list and override the configuration.
type DictionaryFlags struct {
	Path     string
	Encoding string
	Database string
	Name     string
}

func (f *DictionaryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Path, "dict", "", "dictionary file (.txt, .gz, .zst, .lz4)")
	cmd.Flags().StringVar(&f.Encoding, "encoding", "", "dictionary text encoding (utf-8, shift_jis, euc-jp)")
	cmd.Flags().StringVar(&f.Database, "db", "", "SQLite database with imported dictionaries")
	cmd.Flags().StringVar(&f.Name, "name", "", "dictionary name inside the database")
}

// apply overrides cfg with the flags that were set. An explicit
// dictionary file wins over a configured database.
func (f *DictionaryFlags) apply(cfg *config.Config) {
	if f.Path != "" {
		cfg.Dictionary.Path = f.Path
		cfg.Database = ""
	}
	if f.Encoding != "" {
		cfg.Dictionary.Encoding = f.Encoding
	}
	if f.Database != "" {
		cfg.Database = f.Database
	}
	if f.Name != "" {
		cfg.Dictionary.Name = f.Name
	}
}

// LoadDictionary loads the configured word list: from the SQLite
// database when one is configured, otherwise from the dictionary file.
func LoadDictionary(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dict.Dictionary, error) {
	if cfg.Database == "" {
		d, err := dict.Load(cfg.Dictionary.Path, cfg.Dictionary.Encoding)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, WrapExitError(ExitCommandError,
					fmt.Sprintf("dictionary not found: %s", cfg.Dictionary.Path), err)
			}
			return nil, WrapExitError(ExitCommandError, "failed to load dictionary", err)
		}
		logger.Debug("dictionary loaded",
			"path", cfg.Dictionary.Path,
			"encoding", cfg.Dictionary.Encoding,
			"words", d.Len(),
		)
		return d, nil
	}

	if _, err := os.Stat(cfg.Database); err != nil {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("database not found: %s", cfg.Database), err)
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	words, err := st.ReadWords(ctx, cfg.Dictionary.Name)
	if err != nil {
		if errors.Is(err, store.ErrDictionaryNotFound) {
			return nil, WrapExitError(ExitCommandError,
				fmt.Sprintf("dictionary %q not found in %s", cfg.Dictionary.Name, cfg.Database), err)
		}
		return nil, WrapExitError(ExitCommandError, "failed to read dictionary", err)
	}

	d := dict.New(words)
	logger.Debug("dictionary loaded", "db", cfg.Database, "name", cfg.Dictionary.Name, "words", d.Len())
	return d, nil
}

// newSearcher builds a Searcher configured from cfg. m may be nil.
func newSearcher(cfg config.Config, d *dict.Dictionary, logger *slog.Logger, m *search.Metrics) *search.Searcher {
	opts := []search.Option{
		search.WithTimeout(cfg.TimeLimit()),
		search.WithDefaultLimit(cfg.Limit),
		search.WithCache(cfg.Cache),
		search.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, search.WithMetrics(m))
	}
	return search.New(d, opts...)
}
