package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.RuleLockTTL)
	assert.Equal(t, 60*time.Second, cfg.RuleListCacheTTL)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.False(t, cfg.RuleRequireSingleCostObject)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RULE_LOCK_TTL", "2m")
	t.Setenv("RULE_LIST_CACHE_TTL", "not-a-duration")
	t.Setenv("RULE_REQUIRE_SINGLE_COST_OBJECT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAILGUN_DOMAIN", "mg.example")
	t.Setenv("MAILGUN_API_KEY", "key")
	t.Setenv("MAILGUN_SENDER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.RuleLockTTL)
	assert.Equal(t, 60*time.Second, cfg.RuleListCacheTTL)
	assert.True(t, cfg.RuleRequireSingleCostObject)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MailgunEnabled())
	assert.Equal(t, "postings@mg.example", cfg.MailgunSender)
}
