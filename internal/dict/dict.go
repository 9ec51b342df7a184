// Package dict holds the immutable word list a search runs against.
//
// A Dictionary keeps the words in file order, a membership set, and two
// inverted indices (by rune length and by first rune) stored as roaring
// bitmaps of word ordinals. Iterating a bitmap yields ordinals in
// ascending order, so index-driven scans visit words in dictionary order.
//
// A Dictionary is never modified after New returns and is safe to share
// between goroutines.
package dict

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/unicode/norm"
)

// Dictionary is an ordered, indexed word list.
type Dictionary struct {
	words    []string
	ids      map[string]uint32
	byLength map[int]*roaring.Bitmap
	byFirst  map[rune]*roaring.Bitmap
}

// New builds a Dictionary. Words are NFC-composed and trimmed; empty
// lines and repeated words are skipped, keeping the first occurrence.
func New(words []string) *Dictionary {
	d := &Dictionary{
		words:    make([]string, 0, len(words)),
		ids:      make(map[string]uint32, len(words)),
		byLength: make(map[int]*roaring.Bitmap),
		byFirst:  make(map[rune]*roaring.Bitmap),
	}
	for _, w := range words {
		d.add(w)
	}
	return d
}

func (d *Dictionary) add(raw string) {
	w := norm.NFC.String(strings.TrimSpace(raw))
	if w == "" {
		return
	}
	if _, dup := d.ids[w]; dup {
		return
	}

	id := uint32(len(d.words))
	d.words = append(d.words, w)
	d.ids[w] = id

	n := utf8.RuneCountInString(w)
	bm, ok := d.byLength[n]
	if !ok {
		bm = roaring.New()
		d.byLength[n] = bm
	}
	bm.Add(id)

	first, _ := utf8.DecodeRuneInString(w)
	bm, ok = d.byFirst[first]
	if !ok {
		bm = roaring.New()
		d.byFirst[first] = bm
	}
	bm.Add(id)
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word with the given ordinal.
func (d *Dictionary) Word(id uint32) string {
	return d.words[id]
}

// Words returns a copy of the word list in dictionary order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.words...)
}

// Contains reports whether w is a dictionary word.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.ids[w]
	return ok
}

// ByLength returns the ordinals of words with exactly n runes. The
// result is a fresh bitmap the caller may modify.
func (d *Dictionary) ByLength(n int) *roaring.Bitmap {
	if bm, ok := d.byLength[n]; ok {
		return bm.Clone()
	}
	return roaring.New()
}

// ByLengthRange returns the ordinals of words whose rune length lies in
// [lo, hi]; hi < 0 means no upper bound.
func (d *Dictionary) ByLengthRange(lo, hi int) *roaring.Bitmap {
	out := roaring.New()
	for n, bm := range d.byLength {
		if n >= lo && (hi < 0 || n <= hi) {
			out.Or(bm)
		}
	}
	return out
}

// ByFirst returns the ordinals of words starting with any of runes.
func (d *Dictionary) ByFirst(runes ...rune) *roaring.Bitmap {
	out := roaring.New()
	for _, r := range runes {
		if bm, ok := d.byFirst[r]; ok {
			out.Or(bm)
		}
	}
	return out
}

// Scan yields (ordinal, word) pairs in dictionary order. A nil
// candidates bitmap means every word.
func (d *Dictionary) Scan(candidates *roaring.Bitmap) iter.Seq2[uint32, string] {
	return func(yield func(uint32, string) bool) {
		if candidates == nil {
			for i, w := range d.words {
				if !yield(uint32(i), w) {
					return
				}
			}
			return
		}
		it := candidates.Iterator()
		for it.HasNext() {
			id := it.Next()
			if !yield(id, d.words[id]) {
				return
			}
		}
	}
}
