package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test; t.Setenv restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func clearSMTPEnv(t *testing.T) {
	t.Helper()
	unsetEnv(t, "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM", "SMTP_TO", "SMTP_TIMEOUT", "OTEL_SAMPLING_RATIO")
}

func TestParseDefaults(t *testing.T) {
	clearSMTPEnv(t)
	unsetEnv(t, "API_PORT")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.SMTP.Configured())
	assert.False(t, cfg.SMTP.HasCredentials())
}

func TestParseFromFallsBackToUser(t *testing.T) {
	clearSMTPEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_TO", "inbox@example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "mailer@example.com", cfg.SMTP.From)
	assert.Equal(t, "smtp.example.com:2525", cfg.SMTP.Addr())
	assert.True(t, cfg.SMTP.Configured())
	assert.True(t, cfg.SMTP.HasCredentials())
}

func TestParseExplicitFromWins(t *testing.T) {
	clearSMTPEnv(t)
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", cfg.SMTP.From)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non numeric port", "SMTP_PORT", "smtp"},
		{"negative timeout", "SMTP_TIMEOUT", "-1s"},
		{"sample ratio above one", "OTEL_SAMPLING_RATIO", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSMTPEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
