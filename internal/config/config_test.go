package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "MEMORY_STORE_TTL", "VARIANT_POLICY", "MOCK_USER_ID", "OTEL_ENABLED", "MOCK_SUBSCRIPTION_PRICE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, StoreDriverMemory, cfg.Database.StoreDriver)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440001", cfg.Demo.UserID)
	assert.Equal(t, 5*time.Minute, cfg.Database.MemoryStoreTTL)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, int64(2500), cfg.Demo.SubscriptionPrice)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_TTL", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_TTL", time.Minute))

	t.Setenv("X_TTL", "30")
	assert.Equal(t, 30*time.Second, getEnvAsDuration("X_TTL", time.Minute))

	t.Setenv("X_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("X_TTL", time.Minute))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("X_FLAG", "true")
	assert.True(t, getEnvAsBool("X_FLAG", false))

	t.Setenv("X_FLAG", "nope")
	assert.True(t, getEnvAsBool("X_FLAG", true))
}
