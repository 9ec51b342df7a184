package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrDictionaryNotFound is returned when no dictionary has the requested
// name.
var ErrDictionaryNotFound = errors.New("dictionary not found")

// ReadDictionary returns the metadata of name.
func (s *Store) ReadDictionary(ctx context.Context, name string) (Dictionary, error) {
	var d Dictionary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, encoding, word_count
		FROM dictionaries
		WHERE name = ?
	`, name).Scan(&d.ID, &d.Name, &d.Source, &d.Encoding, &d.WordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Dictionary{}, fmt.Errorf("read %s: %w", name, ErrDictionaryNotFound)
	}
	if err != nil {
		return Dictionary{}, fmt.Errorf("read %s: %w", name, err)
	}
	return d, nil
}

// ReadWords returns the words of name in import order.
func (s *Store) ReadWords(ctx context.Context, name string) ([]string, error) {
	d, err := s.ReadDictionary(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT word
		FROM words
		WHERE dictionary_id = ?
		ORDER BY ordinal ASC
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	words := make([]string, 0, d.WordCount)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	return words, nil
}

// LengthHistogram returns the number of words of name per rune length.
func (s *Store) LengthHistogram(ctx context.Context, name string) (map[int]int, error) {
	d, err := s.ReadDictionary(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT length, COUNT(*)
		FROM words
		WHERE dictionary_id = ?
		GROUP BY length
		ORDER BY length ASC
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("query lengths: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var length, count int
		if err := rows.Scan(&length, &count); err != nil {
			return nil, fmt.Errorf("scan length: %w", err)
		}
		out[length] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lengths: %w", err)
	}

	return out, nil
}

// ListDictionaries returns every stored dictionary ordered by name.
func (s *Store) ListDictionaries(ctx context.Context) ([]Dictionary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, encoding, word_count
		FROM dictionaries
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query dictionaries: %w", err)
	}
	defer rows.Close()

	out := []Dictionary{}
	for rows.Next() {
		var d Dictionary
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.Encoding, &d.WordCount); err != nil {
			return nil, fmt.Errorf("scan dictionary: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dictionaries: %w", err)
	}

	return out, nil
}
