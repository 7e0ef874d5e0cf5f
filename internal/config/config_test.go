package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAIL_PORT", "PROVIDER_TIMEOUT", "ENRICH_WEBSITES", "ALLOWED_ORIGINS", "RABBITMQ_HOST", "DATABASE_URL", "MAIL_HOST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.EnrichWebsites)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.QueueEnabled())
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.MailEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAIL_PORT", "2525")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("ENRICH_WEBSITES", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.app, ,https://b.app")
	t.Setenv("RABBITMQ_HOST", "rabbit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.EnrichWebsites)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.AllowedOrigins)
	assert.True(t, cfg.QueueEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAIL_PORT", "smtp")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAIL_PORT", "587")
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}
