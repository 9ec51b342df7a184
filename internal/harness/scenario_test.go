package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
language: ja
dictionary:
  words: [あい, かき]
cases:
  - query: "あ?"
    limit: 5
    expect: [あい]
  - query: "?"
    count: 0
  - query: "?{2}"
    error:
      kind: syntax
      context: "?{"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, "ja", scenario.Language)
	assert.Equal(t, []string{"あい", "かき"}, scenario.Dictionary.Words)
	require.Len(t, scenario.Cases, 3)
	assert.Equal(t, 5, scenario.Cases[0].Limit)
	assert.Equal(t, []string{"あい"}, scenario.Cases[0].Expect)
	require.NotNil(t, scenario.Cases[1].Count)
	assert.Equal(t, 0, *scenario.Cases[1].Count)
	require.NotNil(t, scenario.Cases[2].Error)
	assert.Equal(t, "syntax", scenario.Cases[2].Error.Kind)
	assert.Equal(t, "?{", scenario.Cases[2].Error.Context)
}

func TestLoadScenario_ResolvesDictionaryPath(t *testing.T) {
	path := writeScenario(t, `
name: file
description: "Relative dictionary path"
dictionary:
  path: words.txt
  encoding: shift_jis
cases:
  - query: "?"
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "words.txt"), scenario.Dictionary.Path)
	assert.Equal(t, "shift_jis", scenario.Dictionary.Encoding)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Misspelled expectation"
dictionary:
  words: [あい]
cases:
  - query: "あ?"
    expects: [あい]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "missing name",
			content: `
description: "d"
dictionary: { words: [あ] }
cases: [{ query: "?", count: 1 }]
`,
			want: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
dictionary: { words: [あ] }
cases: [{ query: "?", count: 1 }]
`,
			want: "description is required",
		},
		{
			name: "no dictionary",
			content: `
name: n
description: "d"
cases: [{ query: "?", count: 1 }]
`,
			want: "words or path is required",
		},
		{
			name: "words and path",
			content: `
name: n
description: "d"
dictionary: { words: [あ], path: words.txt }
cases: [{ query: "?", count: 1 }]
`,
			want: "mutually exclusive",
		},
		{
			name: "no cases",
			content: `
name: n
description: "d"
dictionary: { words: [あ] }
`,
			want: "cases list is required",
		},
		{
			name: "case without expectation",
			content: `
name: n
description: "d"
dictionary: { words: [あ] }
cases: [{ query: "?" }]
`,
			want: "cases[0]: one of expect",
		},
		{
			name: "error with results",
			content: `
name: n
description: "d"
dictionary: { words: [あ] }
cases: [{ query: "?", count: 1, error: { kind: syntax } }]
`,
			want: "cannot be combined",
		},
		{
			name: "unknown error kind",
			content: `
name: n
description: "d"
dictionary: { words: [あ] }
cases: [{ query: "?", error: { kind: oops } }]
`,
			want: `unknown error kind "oops"`,
		},
		{
			name: "unsupported language",
			content: `
name: n
description: "d"
language: fr
dictionary: { words: [あ] }
cases: [{ query: "?", count: 1 }]
`,
			want: `language "fr"`,
		},
		{
			name: "negative limit",
			content: `
name: n
description: "d"
dictionary: { words: [あ] }
cases: [{ query: "?", limit: -1, count: 1 }]
`,
			want: "limit must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
