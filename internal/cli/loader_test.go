package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/config"
	"github.com/leonfyr/jisho/internal/testutil"
)

func TestLoadDictionary_LogsOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Dictionary.Path = testutil.WriteDictionary(t, "words.txt", testutil.SmallWords)
	cfg.Dictionary.Encoding = "utf-8"

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := LoadDictionary(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, len(testutil.SmallWords), d.Len())

	assert.Equal(t, 1, strings.Count(buf.String(), "dictionary loaded"))
	assert.Contains(t, buf.String(), "encoding=utf-8")
	assert.Contains(t, buf.String(), "words=23")
}
