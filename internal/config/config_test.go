package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "jisho.dic", cfg.Dictionary.Path)
	assert.Equal(t, "utf-8", cfg.Dictionary.Encoding)
	assert.Equal(t, "default", cfg.Dictionary.Name)
	assert.Empty(t, cfg.Database)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 200, cfg.Limit)
	assert.True(t, cfg.Cache)
	assert.Equal(t, 20*time.Second, cfg.TimeLimit())
}

func TestParse_Overrides(t *testing.T) {
	src := `
dictionary: {
	path:     "words.dic.zst"
	encoding: "shift_jis"
}
database:           "jisho.db"
language:           "ja"
time_limit_seconds: 1.5
limit:              50
cache:              false
`
	cfg, err := Parse([]byte(src), "jisho.cue")
	require.NoError(t, err)

	assert.Equal(t, "words.dic.zst", cfg.Dictionary.Path)
	assert.Equal(t, "shift_jis", cfg.Dictionary.Encoding)
	assert.Equal(t, "default", cfg.Dictionary.Name)
	assert.Equal(t, "jisho.db", cfg.Database)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, 1500*time.Millisecond, cfg.TimeLimit())
	assert.Equal(t, 50, cfg.Limit)
	assert.False(t, cfg.Cache)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `limit: `},
		{"wrong type", `limit: "many"`},
		{"non-positive limit", `limit: 0`},
		{"non-positive time limit", `time_limit_seconds: -1`},
		{"unsupported language", `language: "fr"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "jisho.cue")
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jisho.cue")
	require.NoError(t, os.WriteFile(path, []byte(`limit: 7`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Limit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault("explicit.cue")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(DefaultFile, []byte(`language: "zh"`), 0644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "zh", cfg.Language)
}

func TestError_Format(t *testing.T) {
	err := &Error{Field: "limit", Message: "invalid value"}
	assert.Equal(t, "limit: invalid value", err.Error())
}
