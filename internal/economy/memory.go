package economy

import (
	"context"
	"sync"
)

// MemoryLedger keeps balances in process memory.
type MemoryLedger struct {
	Formatter

	mu       sync.Mutex
	balances map[string]float64
}

var _ Ledger = (*MemoryLedger)(nil)

func NewMemoryLedger(f Formatter) *MemoryLedger {
	return &MemoryLedger{
		Formatter: f,
		balances:  make(map[string]float64),
	}
}

func (m *MemoryLedger) Enabled() bool { return true }

func (m *MemoryLedger) Balance(ctx context.Context, player string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[player], nil
}

func (m *MemoryLedger) Modify(ctx context.Context, player string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[player] += delta
	return nil
}

// Deposit seeds a balance.
func (m *MemoryLedger) Deposit(player string, amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[player] += amount
}

func (m *MemoryLedger) Close() error { return nil }
