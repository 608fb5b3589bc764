package economy

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/craft-flags/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRedis(t *testing.T) (*RedisLedger, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	ledger, err := NewRedisLedger("redis://"+mr.Addr(), NewFormatter("coins", 2), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis ledger: %v", err)
	}

	return ledger, mr
}

// ledgerCases runs the same balance scenario against every persistent backend.
func ledgerCases(t *testing.T) map[string]Ledger {
	t.Helper()

	redisLedger, mr := setupTestRedis(t)
	t.Cleanup(func() {
		redisLedger.Close()
		mr.Close()
	})

	sqlLedger, err := OpenSQLite(":memory:", NewFormatter("coins", 2), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { sqlLedger.Close() })

	return map[string]Ledger{
		"memory": NewMemoryLedger(NewFormatter("coins", 2)),
		"redis":  redisLedger,
		"sqlite": sqlLedger,
	}
}

func TestLedgers_ModifyAndBalance(t *testing.T) {
	for name, ledger := range ledgerCases(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			assert.True(t, ledger.Enabled())

			balance, err := ledger.Balance(ctx, "steve")
			require.NoError(t, err)
			assert.Equal(t, float64(0), balance)

			require.NoError(t, ledger.Modify(ctx, "steve", 1))
			require.NoError(t, ledger.Modify(ctx, "steve", -2.5))

			balance, err = ledger.Balance(ctx, "steve")
			require.NoError(t, err)
			assert.InDelta(t, -1.5, balance, 1e-9)

			other, err := ledger.Balance(ctx, "alex")
			require.NoError(t, err)
			assert.Equal(t, float64(0), other)
		})
	}
}

func TestRedisLedger_KeyLayout(t *testing.T) {
	ledger, mr := setupTestRedis(t)
	defer mr.Close()
	defer ledger.Close()

	require.NoError(t, ledger.Modify(context.Background(), "steve", 4))
	assert.True(t, mr.Exists("balance:steve"))
}

func TestRedisLedger_CorruptBalance(t *testing.T) {
	ledger, mr := setupTestRedis(t)
	defer mr.Close()
	defer ledger.Close()

	require.NoError(t, mr.Set("balance:steve", "lots"))
	_, err := ledger.Balance(context.Background(), "steve")
	assert.ErrorContains(t, err, "corrupt balance for steve")
}

func TestRedisLedger_WaitForConnection(t *testing.T) {
	ledger, mr := setupTestRedis(t)
	defer ledger.Close()

	ctx := context.Background()
	require.NoError(t, ledger.WaitForConnection(ctx, 3, 10*time.Millisecond))

	mr.Close()
	err := ledger.WaitForConnection(ctx, 2, 10*time.Millisecond)
	assert.ErrorContains(t, err, "did not become available after 2 attempts")
}

func TestNewRedisLedger_BadURL(t *testing.T) {
	_, err := NewRedisLedger("not a url", NewFormatter("coins", 2), testLogger())
	assert.ErrorContains(t, err, "failed to parse redis URL")
}

func TestRedisLedger_NilLogger(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	ledger, err := NewRedisLedger("redis://"+mr.Addr(), NewFormatter("coins", 2), nil)
	require.NoError(t, err)
	defer ledger.Close()

	require.NoError(t, mr.Set("balance:steve", "lots"))
	_, err = ledger.Balance(context.Background(), "steve")
	assert.Error(t, err)

	mr.Close()
	assert.NotPanics(t, func() {
		assert.Error(t, ledger.Modify(context.Background(), "steve", 1))
	})
}

func TestSQLLedger_UpdatesExistingRow(t *testing.T) {
	ledger, err := OpenSQLite("", NewFormatter("coins", 2), testLogger())
	require.NoError(t, err)
	defer ledger.Close()

	ctx := context.Background()
	require.NoError(t, ledger.Modify(ctx, "steve", 10))
	require.NoError(t, ledger.Modify(ctx, "steve", -10))
	require.NoError(t, ledger.Modify(ctx, "steve", 3))

	var count int64
	require.NoError(t, ledger.db.Model(&BalanceModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	balance, err := ledger.Balance(ctx, "steve")
	require.NoError(t, err)
	assert.Equal(t, float64(3), balance)
}

func TestMemoryLedger_Deposit(t *testing.T) {
	ledger := NewMemoryLedger(NewFormatter("coins", 2))
	ledger.Deposit("steve", 5)

	balance, err := ledger.Balance(context.Background(), "steve")
	require.NoError(t, err)
	assert.Equal(t, float64(5), balance)
}

func TestDisabled(t *testing.T) {
	d := Disabled{Formatter: NewFormatter("coins", 2)}
	assert.False(t, d.Enabled())

	_, err := d.Balance(context.Background(), "steve")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, d.Modify(context.Background(), "steve", 1), ErrDisabled)
	assert.NoError(t, d.Close())
}

func TestFormatter(t *testing.T) {
	tests := []struct {
		name      string
		formatter Formatter
		amount    float64
		expected  string
	}{
		{"two decimals", NewFormatter("coins", 2), 2.5, "2.50 coins"},
		{"grouping", NewFormatter("coins", 2), 1234.5, "1,234.50 coins"},
		{"no decimals", NewFormatter("gems", 0), 3, "3 gems"},
		{"no currency", NewFormatter("", 1), 0.5, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.formatter.Format(tt.amount))
		})
	}
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.EconomyConfig
		enabled bool
		wantErr bool
	}{
		{"none", config.EconomyConfig{Backend: config.EconomyNone}, false, false},
		{"empty", config.EconomyConfig{}, false, false},
		{"memory", config.EconomyConfig{Backend: config.EconomyMemory}, true, false},
		{"redis", config.EconomyConfig{Backend: config.EconomyRedis, RedisURL: "redis://" + mr.Addr()}, true, false},
		{"sqlite", config.EconomyConfig{Backend: config.EconomySQLite}, true, false},
		{"unknown", config.EconomyConfig{Backend: "vault"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := Open(tt.cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer ledger.Close()
			assert.Equal(t, tt.enabled, ledger.Enabled())
		})
	}
}

func TestMockLedger(t *testing.T) {
	m := NewMockLedger()
	ctx := context.Background()

	assert.True(t, m.Enabled())
	_, _ = m.Balance(ctx, "steve")
	_ = m.Modify(ctx, "steve", 2)
	_ = m.Close()

	assert.Equal(t, []string{"steve"}, m.BalanceCalls)
	assert.Equal(t, []ModifyCall{{Player: "steve", Delta: 2}}, m.ModifyCalls)
	assert.Equal(t, 1, m.CloseCalls)

	m.SetDisabled()
	assert.False(t, m.Enabled())

	m.Reset()
	assert.Empty(t, m.BalanceCalls)
	assert.Empty(t, m.ModifyCalls)
	assert.Zero(t, m.CloseCalls)
}
