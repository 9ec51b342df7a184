package store

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Dictionary describes an imported word list.
type Dictionary struct {
	ID        int64
	Name      string
	Source    string // path the words were loaded from
	Encoding  string
	WordCount int
}

// ImportWords stores words under name, replacing any dictionary already
// stored under that name. Word order is preserved; repeated words are
// stored once, at their first position.
//
// The import runs in a single transaction: a failed import leaves the
// previous contents in place.
func (s *Store) ImportWords(ctx context.Context, name, source, encoding string, words []string) (Dictionary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Dictionary{}, fmt.Errorf("import %s: %w", name, err)
	}
	defer tx.Rollback()

	// ON DELETE CASCADE removes the old words.
	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE name = ?`, name); err != nil {
		return Dictionary{}, fmt.Errorf("import %s: replace: %w", name, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO dictionaries (name, source, encoding)
		VALUES (?, ?, ?)
	`, name, source, encoding)
	if err != nil {
		return Dictionary{}, fmt.Errorf("import %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Dictionary{}, fmt.Errorf("import %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (dictionary_id, ordinal, word, length)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(dictionary_id, word) DO NOTHING
	`)
	if err != nil {
		return Dictionary{}, fmt.Errorf("import %s: %w", name, err)
	}
	defer stmt.Close()

	count := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, id, count, w, utf8.RuneCountInString(w))
		if err != nil {
			return Dictionary{}, fmt.Errorf("import %s: word %q: %w", name, w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE dictionaries SET word_count = ? WHERE id = ?
	`, count, id); err != nil {
		return Dictionary{}, fmt.Errorf("import %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return Dictionary{}, fmt.Errorf("import %s: commit: %w", name, err)
	}

	return Dictionary{
		ID:        id,
		Name:      name,
		Source:    source,
		Encoding:  encoding,
		WordCount: count,
	}, nil
}

// DeleteDictionary removes name and its words. Deleting a missing
// dictionary is not an error.
func (s *Store) DeleteDictionary(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dictionaries WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
