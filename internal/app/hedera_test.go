package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/cryptora/internal/domain"
	historywal "github.com/vadiminshakov/cryptora/internal/storage/history"
	"github.com/vadiminshakov/cryptora/internal/store"
)

type fakeHederaBackend struct {
	mu           sync.Mutex
	balanceCalls int
	balance      domain.HederaAccountState
	transfer     domain.TransferResult
}

func (f *fakeHederaBackend) HederaBalance(context.Context) (domain.HederaAccountState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++
	return f.balance, nil
}

func (f *fakeHederaBackend) TransferHbar(context.Context, string, string, decimal.Decimal) (domain.TransferResult, error) {
	return f.transfer, nil
}

func (f *fakeHederaBackend) HederaTips(context.Context) ([]string, error) {
	return []string{"tip one", "tip two"}, nil
}

func (f *fakeHederaBackend) HederaNews(context.Context) ([]string, error) {
	return []string{"news one"}, nil
}

func (f *fakeHederaBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceCalls
}

func TestHederaMountLoadsHistoryAndFeeds(t *testing.T) {
	wal, err := historywal.NewStore(t.TempDir())
	require.NoError(t, err)
	defer wal.Close()

	persisted := []domain.TransferRecord{
		{ID: "1-a", Recipient: "0.0.1", Amount: "1", Status: domain.TransferSuccess, TransactionID: "tx-1"},
	}
	require.NoError(t, wal.Save(persisted))

	backend := &fakeHederaBackend{balance: domain.HederaAccountState{AccountID: "0.0.1234", BalanceTinybars: 500_000_000}}
	history := store.NewHistoryStore(wal, nil)
	balances := store.NewBalanceStore(nil)

	session := NewHederaSession(backend, wal, history, balances, "operator-key", time.Hour, nil)
	require.NoError(t, session.Mount(context.Background()))
	defer session.Unmount()

	// history read back before any network state is shown
	records := history.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "1-a", records[0].ID)

	// one immediate balance fetch on mount
	assert.Equal(t, 1, backend.calls())
	hedera, ok := balances.Hedera()
	require.True(t, ok)
	assert.Equal(t, "0.0.1234", hedera.AccountID)

	assert.Equal(t, []string{"tip one", "tip two"}, session.Tips())
	assert.Equal(t, []string{"news one"}, session.News())
}

func TestHederaSubmitForcesBalanceRefresh(t *testing.T) {
	backend := &fakeHederaBackend{
		balance:  domain.HederaAccountState{AccountID: "0.0.1234", BalanceTinybars: 500_000_000},
		transfer: domain.TransferResult{Status: string(domain.TransferSuccess), TransactionID: "tx-9"},
	}
	history := store.NewHistoryStore(nil, nil)
	balances := store.NewBalanceStore(nil)

	session := NewHederaSession(backend, nil, history, balances, "operator-key", time.Hour, nil)
	require.NoError(t, session.Mount(context.Background()))
	defer session.Unmount()

	require.Equal(t, 1, backend.calls())

	rec, err := session.Submit(context.Background(), "0.0.50", "2")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferSuccess, rec.Status)
	assert.Equal(t, "tx-9", rec.TransactionID)

	// the refresh hook re-polled without waiting for the timer
	assert.Equal(t, 2, backend.calls())
	assert.Equal(t, 1, history.Len())
}
