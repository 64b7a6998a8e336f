package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/userbase-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database. By default it
// calls fn with a nil transaction, which stores from this package ignore.
type MockTxRunner struct {
	// RunFn replaces the default behavior when set.
	RunFn func(ctx context.Context, fn store.TxFn) error

	// Err, when set, is returned before fn runs, as a failed BEGIN would.
	Err error

	mu    sync.Mutex
	calls int
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// RunInTransaction implements store.TxRunner.
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}

// Calls reports how many transactions were started.
func (m *MockTxRunner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
