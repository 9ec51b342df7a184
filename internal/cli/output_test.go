package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	out := QueryOutput{Query: "<あい>&?", Count: 1, Results: []string{"あい"}}
	require.NoError(t, formatter.Success(out))

	// Query operators are written as-is, not as \u003c escapes.
	assert.Contains(t, buf.String(), `"query": "<あい>&?"`)

	var resp struct {
		Status string      `json:"status"`
		Data   QueryOutput `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"あい"}, resp.Data.Results)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	out := QueryOutput{
		Query:   "あ[",
		Results: []string{},
		Kind:    "syntax",
		Context: "あ[",
		Message: "#Syntax error:あ[",
	}
	require.NoError(t, formatter.Error(ErrCodeQuery, out.Message, out.details(), out))

	var resp struct {
		Status string      `json:"status"`
		Data   QueryOutput `json:"data"`
		Error  struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "syntax", resp.Data.Kind)
	assert.Equal(t, ErrCodeQuery, resp.Error.Code)
	assert.Equal(t, "#Syntax error:あ[", resp.Error.Message)
	assert.Equal(t, map[string]string{"kind": "syntax", "context": "あ["}, resp.Error.Details)
}

func TestOutputFormatter_JSONErrorWithoutData(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeTestFailed, "1 scenario(s) failed", nil, nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
	assert.NotContains(t, resp, "data")
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success(`Imported 23 words into "small" (jisho.db)`))
	assert.Equal(t, "Imported 23 words into \"small\" (jisho.db)\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			details := map[string]string{"kind": "timeout"}
			require.NoError(t, formatter.Error(ErrCodeQuery, "#Timeout", details, nil))
			assert.Contains(t, buf.String(), "Error [E001]: #Timeout\n")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: map[kind:timeout]")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		errOut  bool
		wantOut string
		wantErr string
	}{
		{"disabled", false, true, "", ""},
		{"to err writer", true, true, "", "Loaded 3 words\n"},
		{"falls back to writer", true, false, "Loaded 3 words\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: out, Verbose: tt.verbose}
			if tt.errOut {
				formatter.ErrWriter = errOut
			}

			formatter.VerboseLog("Loaded %d words", 3)

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}
