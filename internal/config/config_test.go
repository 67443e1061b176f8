package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[storage]
driver = "postgres"

[database]
host = "localhost"
user = "smc"
password = "secret"
dbname = "appointments"

[redis]
addr = "localhost:6379"

[kafka]
brokers = "kafka-1:9092, kafka-2:9092"

[admin]
jwt_secret = "s3cr3t"
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "host=localhost port=5432 user=smc password=secret dbname=appointments sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "appointment.booked", cfg.Kafka.Topic)
	assert.Equal(t, "citas@bbva.com", cfg.Notifications.NaturalRecipient)
	assert.Equal(t, "citas.juridicas@bbva.com", cfg.Notifications.JuridicalRecipient)
	assert.True(t, cfg.Booking.EnforceWindow)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown driver", "[storage]\ndriver = \"sqlite\"\n[admin]\njwt_secret = \"x\""},
		{"postgres without host", "[admin]\njwt_secret = \"x\""},
		{"missing secret", "[storage]\ndriver = \"memory\""},
		{"bad port", "[server]\nhttp_port = 70000\n[storage]\ndriver = \"memory\"\n[admin]\njwt_secret = \"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse("[server\n")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndriver = \"memory\"\n[admin]\njwt_secret = \"x\""), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
