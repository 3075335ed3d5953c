package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, WordsEmbedded, cfg.WordsSource)
	assert.Equal(t, 5*time.Second, cfg.ScoreTimeout)
	assert.Equal(t, 14*24*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.Production())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("WORDS_SOURCE", "file")
	t.Setenv("WORDS_FILE", "/tmp/words.txt")
	t.Setenv("SCORE_TIMEOUT", "250ms")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Production())
	assert.Equal(t, "/tmp/words.txt", cfg.WordsFile)
	assert.Equal(t, 250*time.Millisecond, cfg.ScoreTimeout)
}

func TestParseRejectsBadSource(t *testing.T) {
	t.Setenv("WORDS_SOURCE", "remote")
	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("WORDS_SOURCE", "carrier-pigeon")
	_, err = Parse()
	assert.Error(t, err)
}
