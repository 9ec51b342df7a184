package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/testutil"
)

func intPtr(n int) *int { return &n }

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Dictionary:  DictionarySource{Words: testutil.SmallWords},
		Cases: []Case{
			{Query: "あ?", Expect: []string{"あい", "あお"}},
			{Query: "*", Limit: 3, Count: intPtr(3)},
			{Query: "?し", Contains: []string{"ばし", "はし"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Cases, 3)
	assert.Equal(t, 3, result.Cases[1].Count)
	assert.Equal(t, []string{"はし", "ばし", "ぱし"}, result.Cases[2].Results)
}

func TestRun_ReportsMismatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Every expectation is wrong",
		Dictionary:  DictionarySource{Words: testutil.SmallWords},
		Cases: []Case{
			{Query: "あ?", Expect: []string{"あお", "あい"}},
			{Query: "あ?", Contains: []string{"あおい"}},
			{Query: "あ?", Count: intPtr(5)},
			{Query: "あ?", Error: &ExpectedError{Kind: "syntax"}},
			{Query: "あ[k]", Expect: []string{}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "case[0]")
	assert.Contains(t, result.Errors[0], "Expected: [あお あい]")
	assert.Contains(t, result.Errors[1], "results containing あおい")
	assert.Contains(t, result.Errors[2], "5 results")
	assert.Contains(t, result.Errors[3], "error syntax")
	assert.Contains(t, result.Errors[4], "Actual: error #Syntax error")
}

func TestRun_ErrorExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "errors",
		Description: "Error kind, context and message",
		Language:    "zh",
		Dictionary:  DictionarySource{Words: testutil.SmallWords},
		Cases: []Case{
			{Query: "あ(い", Error: &ExpectedError{Kind: "bracket"}},
			{Query: "a?", Error: &ExpectedError{Kind: "mixed_syntax", Context: "B"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "context B")
	assert.Equal(t, "bracket", result.Cases[0].Error)
	assert.Equal(t, "mixed_syntax", result.Cases[1].Error)
	assert.Equal(t, "A", result.Cases[1].Context)
}

func TestRun_DictionaryFile(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", []string{"ねこ", "いぬ"})
	scenario := &Scenario{
		Name:        "file",
		Description: "Dictionary read from disk",
		Dictionary:  DictionarySource{Path: path},
		Cases:       []Case{{Query: "?こ", Expect: []string{"ねこ"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_MissingDictionary(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing",
		Description: "Dictionary file does not exist",
		Dictionary:  DictionarySource{Path: filepath.Join(t.TempDir(), "none.txt")},
		Cases:       []Case{{Query: "?", Count: intPtr(0)}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dictionary")
}

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}
