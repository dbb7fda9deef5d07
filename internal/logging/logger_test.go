package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected Level
		wantErr  bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{"warning", WARN, false},
		{"error", ERROR, false},
		{"verbose", INFO, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			level, err := ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, WARN)

	logger.Info("dealt %d cards", 4)
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	logger.Warn("deck running low: %d", 3)
	assert.Contains(t, buf.String(), "deck running low: 3")
}

func TestLogErrorIncludesGameErrorContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG)

	logger.LogError(types.WrapError(types.ErrAssetMissing, "card back missing", errors.New("file does not exist")))

	out := buf.String()
	assert.Contains(t, out, "ASSET_MISSING")
	assert.Contains(t, out, "card back missing")
	assert.Contains(t, out, "file does not exist")
}

func TestLogErrorPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DEBUG)

	logger.LogError(errors.New("boom"))

	assert.Contains(t, buf.String(), "Unexpected error: boom")
}
