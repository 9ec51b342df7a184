package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leonfyr/jisho/internal/dict"
)

// SmallWords is a fixture dictionary covering the query features:
// plain lookups, classes, membership splits and voicing pairs.
var SmallWords = []string{
	"あい", "あお", "あおい", "いえ", "うえ", "かき", "がき", "かさ",
	"そと", "で", "そとで", "そとが", "はし", "ばし", "ぱし", "みかん",
	"りんご", "くるま", "まくら", "らくご", "あ", "い", "う",
}

// SmallDictionary returns a dictionary of SmallWords.
func SmallDictionary() *dict.Dictionary {
	return dict.New(SmallWords)
}

// WriteDictionary writes words one per line to name in a temporary
// directory and returns the path.
func WriteDictionary(t testing.TB, name string, words []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	return path
}
