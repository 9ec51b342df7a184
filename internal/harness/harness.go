package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/i18n"
	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/search"
)

// Harness is the test execution engine.
// It runs every case of a scenario through one Searcher.
type Harness struct {
	scenario *Scenario
	searcher *search.Searcher
	catalog  *i18n.Catalog
}

// Option configures a Harness.
type Option func(*harnessConfig)

type harnessConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to the Searcher. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *harnessConfig) {
		c.logger = l
	}
}

// New loads the scenario's dictionary and catalog.
func New(s *Scenario, opts ...Option) (*Harness, error) {
	cfg := &harnessConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	d, err := loadDictionary(s.Dictionary)
	if err != nil {
		return nil, err
	}

	catalog, err := i18n.New(s.Language)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	timeout := search.DefaultTimeout
	if s.TimeLimitSeconds > 0 {
		timeout = time.Duration(s.TimeLimitSeconds * float64(time.Second))
	}

	return &Harness{
		scenario: s,
		searcher: search.New(d, search.WithTimeout(timeout), search.WithLogger(cfg.logger)),
		catalog:  catalog,
	}, nil
}

// Run executes a scenario and returns the result.
// A non-nil error means the scenario could not be set up; failed
// expectations are reported in Result.Errors.
func Run(s *Scenario, opts ...Option) (*Result, error) {
	h, err := New(s, opts...)
	if err != nil {
		return nil, err
	}
	return h.Run(context.Background()), nil
}

// Run executes every case in order.
func (h *Harness) Run(ctx context.Context) *Result {
	result := NewResult()
	for i, c := range h.scenario.Cases {
		got := h.runCase(ctx, c)
		result.AddCase(got)
		for _, err := range checkCase(i, c, got) {
			result.AddError(err.Error())
		}
	}
	return result
}

func (h *Harness) runCase(ctx context.Context, c Case) CaseResult {
	got := CaseResult{Query: c.Query, Limit: c.Limit}

	results, err := h.searcher.Search(ctx, c.Query, c.Limit)
	if err != nil {
		got.Message = h.catalog.Format(err)
		var qe *ir.QueryError
		if errors.As(err, &qe) {
			got.Error = string(qe.Kind)
			got.Context = qe.Context
		} else {
			got.Error = "internal"
		}
		return got
	}

	got.Count = len(results)
	got.Results = results
	return got
}

func loadDictionary(src DictionarySource) (*dict.Dictionary, error) {
	if len(src.Words) > 0 {
		return dict.New(src.Words), nil
	}
	d, err := dict.Load(src.Path, src.Encoding)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return d, nil
}
