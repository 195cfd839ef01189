package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "tourhub", cfg.DatabaseName)
	assert.Equal(t, time.Hour, cfg.RatingStaleness)
	assert.Equal(t, 3, cfg.RedisQueueDB)
	assert.Empty(t, cfg.Brokers())
	assert.Equal(t, *cfg, AppConfig)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RATING_STALENESS", "15m")
	t.Setenv("RATING_STRATEGY", "pipeline")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("DATABASE_URL", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.RatingStaleness)
	assert.Equal(t, "pipeline", cfg.RatingStrategy)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers())
	assert.True(t, cfg.UsesMemoryStore())
}

func TestValidate(t *testing.T) {
	base := Config{RatingStaleness: time.Hour, RatingStrategy: "memory"}
	require.NoError(t, base.Validate())

	bad := base
	bad.RatingStaleness = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.RatingStrategy = "sql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Env = "production"
	assert.Error(t, bad.Validate())
	bad.JWTSecret = "x"
	assert.NoError(t, bad.Validate())
}
