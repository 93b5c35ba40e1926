package balancecache

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

func TestWalletRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	snapshot := domain.WalletBalance{
		Address: "0xabc",
		Chains: map[string]domain.ChainBalance{
			"ethereum": {NativeBalance: decimal.RequireFromString("0.5"), USDValue: decimal.NewFromInt(1250), Network: "Ethereum"},
		},
		TotalUSDValue: decimal.NewFromInt(1250),
	}
	require.NoError(t, store.SaveWallet(snapshot))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	loaded, ok := store.LoadWallet()
	require.True(t, ok)
	assert.Equal(t, "0xabc", loaded.Address)
	assert.True(t, loaded.TotalUSDValue.Equal(snapshot.TotalUSDValue))
	assert.True(t, loaded.Chains["ethereum"].NativeBalance.Equal(decimal.RequireFromString("0.5")))
}

func TestHederaRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveHedera(domain.HederaAccountState{AccountID: "0.0.1234", BalanceTinybars: 100_000_000}))

	loaded, ok := store.LoadHedera()
	require.True(t, ok)
	assert.Equal(t, "0.0.1234", loaded.AccountID)
	assert.True(t, loaded.Hbar().Equal(decimal.NewFromInt(1)))
}

func TestKeysAreIndependent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveWallet(domain.WalletBalance{Address: "0xabc"}))

	_, ok := store.LoadHedera()
	assert.False(t, ok)
}

func TestNewestSnapshotWins(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveHedera(domain.HederaAccountState{AccountID: "0.0.1", BalanceTinybars: 1}))
	require.NoError(t, store.SaveHedera(domain.HederaAccountState{AccountID: "0.0.1", BalanceTinybars: 2}))

	loaded, ok := store.LoadHedera()
	require.True(t, ok)
	assert.Equal(t, int64(2), loaded.BalanceTinybars)
}

func TestEmptyCacheMisses(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.LoadWallet()
	assert.False(t, ok)
	_, ok = store.LoadHedera()
	assert.False(t, ok)
}
