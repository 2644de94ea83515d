package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CHAPA_BASE_URL", "")
	t.Setenv("CHAPA_CURRENCY", "")
	t.Setenv("PAYMENT_STALE_AFTER", "")
	t.Setenv("CHAPA_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "https://api.chapa.co/v1", cfg.Chapa.BaseURL)
	assert.Equal(t, "ETB", cfg.Chapa.Currency)
	assert.Equal(t, 30*time.Minute, cfg.Jobs.PaymentStaleAfter)
	assert.Zero(t, cfg.Chapa.Timeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("CHAPA_SECRET_KEY", "CHASECK_TEST-abc")
	t.Setenv("CHAPA_TIMEOUT", "15s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PAYMENT_STALE_AFTER", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.Jobs.PaymentStaleAfter)

	gw := cfg.Chapa.Gateway()
	assert.Equal(t, "CHASECK_TEST-abc", gw.SecretKey)
	assert.Equal(t, 15*time.Second, gw.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PAYMENT_STALE_AFTER", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "PAYMENT_STALE_AFTER")
}

func TestDatabaseDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", User: "u", Password: "p", Name: "travel", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=travel port=5432 sslmode=disable TimeZone=UTC", pg.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", User: "u", Password: "p", Name: "travel"}
	assert.Equal(t, "u:p@tcp(db:3306)/travel?charset=utf8mb4&parseTime=True&loc=UTC", my.DSN())

	url := DatabaseConfig{Driver: "postgres", URL: "postgres://x"}
	assert.Equal(t, "postgres://x", url.DSN())
}
