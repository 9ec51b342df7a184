package engine

import (
	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/ir"
)

// Scan returns up to limit words of d matching n, in dictionary order.
// Only the candidates Plan selects are visited. A limit <= 0 means no
// limit.
//
// When the deadline expires Scan returns the KindTimeout error and no
// words.
func Scan(d *dict.Dictionary, n ir.Node, limit int, dl *Deadline) ([]string, error) {
	m := NewMatcher(d)
	var out []string
	for _, word := range d.Scan(Plan(d, n)) {
		if err := dl.Check(); err != nil {
			return nil, err
		}
		if !m.Match(n, word) {
			continue
		}
		out = append(out, word)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
