package domain

import (
	"github.com/shopspring/decimal"
)

// TinybarsPerHbar is the number of tinybars in one HBAR.
const TinybarsPerHbar = 100_000_000

// ChainBalance is the observed state of a single chain inside a multi-chain wallet.
type ChainBalance struct {
	NativeBalance decimal.Decimal `json:"native_balance"`
	USDValue      decimal.Decimal `json:"usd_value"`
	Network       string          `json:"network"`
}

// WalletBalance is a point-in-time snapshot of the multi-chain wallet.
// Snapshots are immutable once received and replaced wholesale on each poll,
// never patched field by field.
type WalletBalance struct {
	Address       string                  `json:"address"`
	Chains        map[string]ChainBalance `json:"chains"`
	TotalUSDValue decimal.Decimal         `json:"total_usd_value"`
}

// HederaAccountState is a snapshot of the Hedera operator account.
type HederaAccountState struct {
	AccountID       string `json:"account_id"`
	BalanceTinybars int64  `json:"balance"`
}

// Hbar returns the account balance converted from tinybars.
func (s HederaAccountState) Hbar() decimal.Decimal {
	return decimal.New(s.BalanceTinybars, -8)
}

// WalletFunds is one sub-wallet inside the aggregated AI+ balances.
type WalletFunds struct {
	Balance  decimal.Decimal `json:"balance"`
	USDValue decimal.Decimal `json:"usd_value"`
}

// AIBalances aggregates the three wallets tracked by the AI+ screen.
type AIBalances struct {
	Hydra    WalletFunds     `json:"hydra"`
	Coinbase WalletFunds     `json:"coinbase"`
	Metamask WalletFunds     `json:"metamask"`
	TotalUSD decimal.Decimal `json:"total_usd_value"`
}

// RecomputeTotal returns a copy with TotalUSD rebuilt from the sub-wallets.
func (b AIBalances) RecomputeTotal() AIBalances {
	b.TotalUSD = b.Hydra.USDValue.Add(b.Coinbase.USDValue).Add(b.Metamask.USDValue)
	return b
}
