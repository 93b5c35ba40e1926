package store

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

func TestBalanceStoreSnapshots(t *testing.T) {
	s := NewBalanceStore(nil)

	_, ok := s.Wallet()
	assert.False(t, ok)
	_, ok = s.Hedera()
	assert.False(t, ok)
	_, ok = s.AI()
	assert.False(t, ok)

	s.SetWallet(domain.WalletBalance{Address: "0xabc", TotalUSDValue: decimal.NewFromInt(100)})
	wallet, ok := s.Wallet()
	require.True(t, ok)
	assert.Equal(t, "0xabc", wallet.Address)

	s.SetHedera(domain.HederaAccountState{AccountID: "0.0.1234", BalanceTinybars: 250_000_000})
	hedera, ok := s.Hedera()
	require.True(t, ok)
	assert.True(t, hedera.Hbar().Equal(decimal.RequireFromString("2.5")))

	s.SetAI(domain.AIBalances{TotalUSD: decimal.NewFromInt(52)})
	ai, ok := s.AI()
	require.True(t, ok)
	assert.True(t, ai.TotalUSD.Equal(decimal.NewFromInt(52)))
}

func TestBalanceStoreErrorRing(t *testing.T) {
	s := NewBalanceStore(nil)
	s.SetWallet(domain.WalletBalance{Address: "0xabc"})

	for i := 0; i < errRingCap+10; i++ {
		s.RecordError(errors.Errorf("poll failed %d", i))
	}

	errs := s.Errors()
	require.Len(t, errs, errRingCap)
	// oldest entries were evicted, newest kept
	assert.Equal(t, fmt.Sprintf("poll failed %d", 10), errs[0])
	assert.Equal(t, fmt.Sprintf("poll failed %d", errRingCap+9), errs[len(errs)-1])

	// the snapshot itself survives error accumulation
	wallet, ok := s.Wallet()
	require.True(t, ok)
	assert.Equal(t, "0xabc", wallet.Address)
}

func TestBalanceStoreNilErrorIgnored(t *testing.T) {
	s := NewBalanceStore(nil)
	s.RecordError(nil)
	assert.Empty(t, s.Errors())
}
