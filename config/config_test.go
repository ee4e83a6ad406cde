package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("INSTANCE_ID", "till-1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "pos-ledger.db", cfg.DBDSN)
	assert.Equal(t, "till-1", cfg.InstanceID)
	assert.Equal(t, 500*time.Millisecond, cfg.CommitLatency)
	assert.Equal(t, 300*time.Millisecond, cfg.StatusLatency)
	assert.Equal(t, 0.10, cfg.TaxRate)
	assert.Equal(t, 5*time.Second, cfg.LedgerPollInterval)
	assert.Equal(t, 2*time.Second, cfg.QueuePollInterval)
	assert.Equal(t, time.Duration(0), cfg.ConnectivityProbeInterval)
	assert.Equal(t, TransportNone, cfg.BroadcastTransport)
	assert.Equal(t, "pos.ledger.changes", cfg.BroadcastSubject)
	assert.Equal(t, 50, cfg.RateLimitRPS)
	assert.False(t, cfg.StartOffline)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "host=db user=pos dbname=pos")
	t.Setenv("COMMIT_LATENCY", "0s")
	t.Setenv("TAX_RATE", "0.0825")
	t.Setenv("START_OFFLINE", "true")
	t.Setenv("BROADCAST_TRANSPORT", "nats")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, time.Duration(0), cfg.CommitLatency)
	assert.Equal(t, 0.0825, cfg.TaxRate)
	assert.True(t, cfg.StartOffline)
	assert.Equal(t, TransportNATS, cfg.BroadcastTransport)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"COMMIT_LATENCY", "soon", "COMMIT_LATENCY"},
		{"DB_DRIVER", "oracle", "DB_DRIVER"},
		{"BROADCAST_TRANSPORT", "kafka", "BROADCAST_TRANSPORT"},
		{"TAX_RATE", "-1", "TAX_RATE"},
		{"RATE_LIMIT_RPS", "many", "RATE_LIMIT_RPS"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(DriverSQLite, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)

	_, err = Open("oracle", "x")
	assert.Error(t, err)
}

func TestInitQueueDBSharesLedgerByDefault(t *testing.T) {
	ledger, err := Open(DriverSQLite, "file::memory:")
	require.NoError(t, err)

	queue, err := InitQueueDB(&Config{}, ledger)
	require.NoError(t, err)
	assert.Same(t, ledger, queue)
}
