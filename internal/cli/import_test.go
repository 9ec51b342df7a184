package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/testutil"
)

func TestImportCommand_ThenSearchFromDatabase(t *testing.T) {
	dictPath := testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)
	dbPath := filepath.Join(t.TempDir(), "jisho.db")

	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewImportCommand(&RootOptions{Format: "text", Verbose: true})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{dictPath, "--db", dbPath, "--name", "small"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `Imported 23 words into "small"`)
	assert.Contains(t, errBuf.String(), "length  2:")

	out, err := runSearchCommand(t, &RootOptions{Format: "text"}, "あ?", "--db", dbPath, "--name", "small")
	require.NoError(t, err)
	assert.Contains(t, out, "あい\tあお\n")

	_, err = runSearchCommand(t, &RootOptions{Format: "text"}, "あ?", "--db", dbPath, "--name", "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dictionary "other" not found`)
}

func TestImportCommand_JSON(t *testing.T) {
	dictPath := testutil.WriteDictionary(t, "words.txt", []string{"ねこ", "いぬ", "ねこ"})
	dbPath := filepath.Join(t.TempDir(), "jisho.db")

	buf := &bytes.Buffer{}
	cmd := NewImportCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dictPath, "--db", dbPath})
	require.NoError(t, cmd.Execute())

	var response struct {
		Status string       `json:"status"`
		Data   ImportOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "default", response.Data.Name)
	assert.Equal(t, 2, response.Data.WordCount)
	assert.Equal(t, "utf-8", response.Data.Encoding)
	assert.Equal(t, dictPath, response.Data.Source)
}

func TestImportCommand_RequiresDB(t *testing.T) {
	cmd := NewImportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"words.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestImportCommand_MissingFile(t *testing.T) {
	cmd := NewImportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "none.txt"), "--db", filepath.Join(t.TempDir(), "jisho.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDictsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jisho.db")
	for _, name := range []string{"b", "a"} {
		cmd := NewImportCommand(&RootOptions{Format: "text"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{testutil.WriteDictionary(t, name+".txt", []string{"あ", "い"}), "--db", dbPath, "--name", name})
		require.NoError(t, cmd.Execute())
	}

	buf := &bytes.Buffer{}
	cmd := NewDictsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})
	require.NoError(t, cmd.Execute())

	var response struct {
		Data []ImportOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "a", response.Data[0].Name)
	assert.Equal(t, "b", response.Data[1].Name)
	assert.Equal(t, 2, response.Data[0].WordCount)
}

func TestDictsCommand_MissingDatabase(t *testing.T) {
	cmd := NewDictsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "none.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not found")
}
