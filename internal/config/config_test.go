package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("STORE_BACKEND", "Memory")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, c.StoreBackend)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 12*time.Hour, c.SessionTTL)
	assert.Equal(t, "codstore.orders", c.Kafka.Topic)
	assert.Equal(t, c.SessionKey, c.JWTSecret)
	assert.Equal(t, 587, c.SMTP.Port)
	assert.Equal(t, 120, c.RateLimit)
	assert.False(t, c.TrustProxy)
	assert.Equal(t, "host=localhost user=postgres password=postgres dbname=codstore port=5432 sslmode=disable", c.DB.ConnString())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_DSN", "postgres://u:p@db/shop")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("JWT_ADMIN_SECRET", "jwt")
	t.Setenv("ADMIN_SESSION_TTL", "30m")
	t.Setenv("SMTP_HOST", "smtp.store.com")
	t.Setenv("ORDER_NOTIFY_EMAIL", "staff@store.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/shop", c.DB.ConnString())
	assert.Equal(t, "redis://cache:6379/1", c.Redis.URL)
	assert.Equal(t, "k1:9092,k2:9092", c.Kafka.Brokers)
	assert.Equal(t, "jwt", c.JWTSecret)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Equal(t, "smtp.store.com", c.SMTP.Host)
	assert.Equal(t, "staff@store.com", c.SMTP.To)
	assert.Equal(t, 0, c.RateLimit)
}

func TestValidate(t *testing.T) {
	base := Config{StoreBackend: BackendMemory, SessionKey: "k", SessionTTL: time.Hour}
	require.NoError(t, base.Validate())

	prod := base
	prod.AppEnv = "production"
	prod.SessionKey = "dev-insecure"
	assert.Error(t, prod.Validate())

	half := base
	half.AdminEmail = "boss@store.com"
	assert.Error(t, half.Validate())

	negative := base
	negative.RateLimit = -1
	assert.Error(t, negative.Validate())
}
