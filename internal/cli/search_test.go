package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/testutil"
)

func runSearchCommand(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewSearchCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSearchCommand_Text(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "text"}, "あ?", "--dict", path)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Expr:あ?", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Found 2 items in "), lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "あい\tあお", lines[3])
}

func TestSearchCommand_NoSolution(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "text"}, "ん*", "--dict", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 0 items")
	assert.Contains(t, out, "No Solution.")
}

func TestSearchCommand_QueryErrorLocalized(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "text", Lang: "ja"}, "a?", "--dict", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "#変数は複数スロットの検索式でのみ使えます:A")
}

func TestSearchCommand_JSON(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "json"}, "<くまる>", "--dict", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"query": "<くまる>"`)

	var response struct {
		Status string      `json:"status"`
		Data   QueryOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 1, response.Data.Count)
	assert.Equal(t, []string{"くるま"}, response.Data.Results)
}

func TestSearchCommand_JSONError(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "json"}, "あ|い;う", "--dict", path)
	require.Error(t, err)

	var response struct {
		Status string      `json:"status"`
		Data   QueryOutput `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, "global_operator", response.Data.Kind)
	assert.Equal(t, "あ|い", response.Data.Context)
	assert.Equal(t, []string{}, response.Data.Results)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeQuery, response.Error.Code)
	assert.Equal(t, map[string]any{"kind": "global_operator", "context": "あ|い"}, response.Error.Details)
}

func TestSearchCommand_Limit(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	out, err := runSearchCommand(t, &RootOptions{Format: "text"}, "*", "--dict", path, "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 items")
}

func TestSearchCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dictPath := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)
	configPath := filepath.Join(dir, "jisho.cue")
	writeFile(t, configPath, "dictionary: path: \""+dictPath+"\"\nlimit: 1\n")

	out, err := runSearchCommand(t, &RootOptions{Format: "text", Config: configPath}, "あ?")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 items")
}

func TestSearchCommand_BadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "jisho.cue")
	writeFile(t, configPath, "limit: 0\n")

	_, err := runSearchCommand(t, &RootOptions{Format: "text", Config: configPath}, "あ?")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestSearchCommand_MissingDictionary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.txt")

	_, err := runSearchCommand(t, &RootOptions{Format: "text"}, "あ?", "--dict", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "dictionary not found")
}

func TestSearchCommand_UnsupportedLanguage(t *testing.T) {
	path := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)

	_, err := runSearchCommand(t, &RootOptions{Format: "text", Lang: "fr"}, "あ?", "--dict", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestWriteResults_Columns(t *testing.T) {
	results := make([]string, 12)
	for i := range results {
		results[i] = string(rune('あ' + i))
	}

	var buf bytes.Buffer
	WriteResults(&buf, "?", results, 1500*time.Millisecond, "")

	want := "Expr:?\n" +
		"Found 12 items in 1.50 seconds:\n" +
		"\n" +
		strings.Join(results[:10], "\t") + "\n" +
		strings.Join(results[10:], "\t") + "\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteResults_Message(t *testing.T) {
	var buf bytes.Buffer
	WriteResults(&buf, "?{}", nil, 0, "#Syntax error:?{")

	assert.Equal(t, "Expr:?{}\nFound 0 items in 0.00 seconds:\n\n#Syntax error:?{\n\n", buf.String())
}
