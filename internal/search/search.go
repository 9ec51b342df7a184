// Package search answers queries against a loaded dictionary.
//
// A Searcher owns the per-process pieces around the query pipeline: the
// result cache, the time budget, logging and metrics. Each Search call
// normalizes the query, picks single or multi-slot mode, and runs the
// engine.
package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leonfyr/jisho/internal/compiler"
	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/engine"
	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/normalize"
)

const (
	// DefaultLimit caps results when the caller passes a limit <= 0.
	DefaultLimit = 200

	// DefaultTimeout is the search budget.
	DefaultTimeout = 20 * time.Second
)

const (
	modeNone   = "none" // query failed before a mode was chosen
	modeSingle = "single"
	modeMulti  = "multi"

	statusOK      = "ok"
	statusError   = "error"
	statusTimeout = "timeout"
)

type cacheKey struct {
	query string // normalized
	limit int
}

// Searcher runs queries against one dictionary.
//
// A Searcher is not safe for concurrent use: the result cache is
// unsynchronized. Use one Searcher per goroutine.
type Searcher struct {
	dict    *dict.Dictionary
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
	timeout time.Duration
	limit   int
	cache   map[cacheKey][]string // nil when caching is disabled
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout sets the per-search budget. A value <= 0 disables the
// wall-clock limit; the caller's context still applies.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithDefaultLimit sets the limit used when Search gets limit <= 0.
func WithDefaultLimit(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = l
	}
}

// WithMetrics records search metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Searcher) {
		s.metrics = m
	}
}

// WithClock replaces time.Now for deadlines and durations.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		s.now = now
	}
}

// WithCache enables or disables the result cache. Enabled by default.
func WithCache(enabled bool) Option {
	return func(s *Searcher) {
		if enabled {
			s.cache = make(map[cacheKey][]string)
		} else {
			s.cache = nil
		}
	}
}

// New creates a Searcher over d.
func New(d *dict.Dictionary, opts ...Option) *Searcher {
	s := &Searcher{
		dict:    d,
		logger:  slog.Default(),
		now:     time.Now,
		timeout: DefaultTimeout,
		limit:   DefaultLimit,
		cache:   make(map[cacheKey][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Search returns up to limit words (single-slot queries) or joint
// answers (multi-slot queries, slot words joined by ';').
//
// Errors are *ir.QueryError values. On timeout no results are returned.
// Successful results are cached by normalized query and limit; the
// returned slice is never shared with the cache.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.limit
	}
	id := queryID()
	start := s.now()

	normalized, err := normalize.Normalize(query)
	if err != nil {
		s.finish(id, query, modeNone, start, nil, nil, err)
		return nil, err
	}

	key := cacheKey{query: normalized, limit: limit}
	if cached, ok := s.cache[key]; ok {
		s.metrics.cacheHits.Inc()
		s.logger.Debug("cache hit", "query_id", id, "query", normalized, "results", len(cached))
		return slices.Clone(cached), nil
	}
	if s.cache != nil {
		s.metrics.cacheMisses.Inc()
	}

	mode := modeOf(normalized)
	dl := engine.NewDeadline(ctx, s.timeout, s.now)

	var results []string
	switch mode {
	case modeSingle:
		results, err = s.single(normalized, limit, dl)
	default:
		results, err = s.multi(normalized, limit, dl)
	}
	if err != nil {
		s.finish(id, normalized, mode, start, dl, nil, err)
		return nil, err
	}

	if results == nil {
		results = []string{}
	}
	if s.cache != nil {
		s.cache[key] = slices.Clone(results)
	}
	s.finish(id, normalized, mode, start, dl, results, nil)
	return results, nil
}

func (s *Searcher) single(normalized string, limit int, dl *engine.Deadline) ([]string, error) {
	if i := strings.IndexFunc(normalized, isVariable); i >= 0 {
		return nil, ir.NewError(ir.KindMixedSyntax, normalized[i:i+1])
	}
	node, err := compiler.Parse(normalized)
	if err != nil {
		return nil, err
	}
	return engine.Scan(s.dict, node, limit, dl)
}

func (s *Searcher) multi(normalized string, limit int, dl *engine.Deadline) ([]string, error) {
	p, err := engine.Prepare(normalized)
	if err != nil {
		return nil, err
	}
	return engine.NewSolver(s.dict, p, engine.WithDeadline(dl)).Solve(limit)
}

func (s *Searcher) finish(id, query, mode string, start time.Time, dl *engine.Deadline, results []string, err error) {
	elapsed := s.now().Sub(start)
	status := statusOK
	switch {
	case ir.IsTimeout(err):
		status = statusTimeout
	case err != nil:
		status = statusError
	}
	s.metrics.observe(mode, status, elapsed, dl.Checks(), len(results))

	attrs := []any{
		"query_id", id,
		"query", query,
		"mode", mode,
		"duration", elapsed,
	}
	if err != nil {
		s.logger.Info("search failed", append(attrs, "error", err)...)
		return
	}
	s.logger.Info("search completed", append(attrs, "results", len(results), "candidates", dl.Checks())...)
}

// ClearCache drops every cached result.
func (s *Searcher) ClearCache() {
	if s.cache != nil {
		clear(s.cache)
	}
}

// Dictionary returns the dictionary the Searcher queries.
func (s *Searcher) Dictionary() *dict.Dictionary {
	return s.dict
}

func modeOf(normalized string) string {
	if strings.Contains(normalized, ";") {
		return modeMulti
	}
	return modeSingle
}

func isVariable(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func queryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
