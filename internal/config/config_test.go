package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMissingPolicyUsesDefaults(t *testing.T) {
	p, err := LoadBookingPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBookingPolicy(), p)
	assert.Equal(t, 30*time.Minute, p.LeadTime())
}

func TestPolicyOverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("LEAD", "45")
	path := writePolicy(t, `
lead_time_minutes: ${LEAD}
strict_overlap: true
lock_wait_millis: 500
`)

	p, err := LoadBookingPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, p.LeadTime())
	assert.True(t, p.StrictOverlap)
	assert.True(t, p.PublicStrictOverlap, "unset keys keep defaults")
	assert.Equal(t, 500*time.Millisecond, p.LockWait())
	assert.Equal(t, "America/Sao_Paulo", p.DefaultTimezone)
}

func TestPolicyRejectsNegativeLeadTime(t *testing.T) {
	_, err := LoadBookingPolicy(writePolicy(t, "lead_time_minutes: -5\n"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BOOKING_POLICY_PATH", writePolicy(t, "strict_overlap: true\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.Booking.StrictOverlap)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")
	_, err := Load()
	assert.Error(t, err)
}
