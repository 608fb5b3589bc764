package economy

import (
	"context"
)

// MockLedger is a mock implementation of Ledger for testing
type MockLedger struct {
	Formatter

	EnabledFunc func() bool
	BalanceFunc func(ctx context.Context, player string) (float64, error)
	ModifyFunc  func(ctx context.Context, player string, delta float64) error

	// Track calls for testing
	BalanceCalls []string
	ModifyCalls  []ModifyCall
	CloseCalls   int
}

type ModifyCall struct {
	Player string
	Delta  float64
}

// NewMockLedger creates a new enabled mock ledger
func NewMockLedger() *MockLedger {
	return &MockLedger{
		Formatter:    NewFormatter("coins", 2),
		BalanceCalls: make([]string, 0),
		ModifyCalls:  make([]ModifyCall, 0),
	}
}

// Enabled mocks the backend availability check
func (m *MockLedger) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}

	// Default behavior - enabled
	return true
}

// Balance mocks a balance lookup
func (m *MockLedger) Balance(ctx context.Context, player string) (float64, error) {
	m.BalanceCalls = append(m.BalanceCalls, player)

	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, player)
	}

	// Default behavior - empty balance
	return 0, nil
}

// Modify mocks a balance change
func (m *MockLedger) Modify(ctx context.Context, player string, delta float64) error {
	m.ModifyCalls = append(m.ModifyCalls, ModifyCall{Player: player, Delta: delta})

	if m.ModifyFunc != nil {
		return m.ModifyFunc(ctx, player, delta)
	}

	// Default behavior - success
	return nil
}

// Close mocks ledger close
func (m *MockLedger) Close() error {
	m.CloseCalls++
	return nil
}

// SetDisabled makes the mock report a disabled backend
func (m *MockLedger) SetDisabled() {
	m.EnabledFunc = func() bool {
		return false
	}
}

// Reset clears all call tracking
func (m *MockLedger) Reset() {
	m.BalanceCalls = make([]string, 0)
	m.ModifyCalls = make([]ModifyCall, 0)
	m.CloseCalls = 0
}

// Ensure MockLedger implements Ledger interface
var _ Ledger = (*MockLedger)(nil)
