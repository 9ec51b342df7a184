// Package store provides SQLite-backed storage for imported dictionaries.
//
// A dictionary file is decoded and decompressed once by the import
// command; later searches read the word list back from the database
// instead of the original file.
//
// # Tables
//
//   - dictionaries: one row per named word list
//   - words: (dictionary_id, ordinal) keyed, UNIQUE(dictionary_id, word)
//
// Reads return words ORDER BY ordinal so a stored dictionary yields the
// same word order, and therefore the same result order, as the file it
// was imported from.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
