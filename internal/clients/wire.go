package clients

import (
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

// Wire shapes mirror the backend's JSON exactly. Decoding into them and
// converting to domain types is the single validated decode step at the
// client boundary.

type chainSection struct {
	BalanceEth   decimal.Decimal `json:"balance_eth"`
	BalanceMatic decimal.Decimal `json:"balance_matic"`
	BalanceBnb   decimal.Decimal `json:"balance_bnb"`
	USDValue     decimal.Decimal `json:"usd_value"`
	Network      string          `json:"network"`
}

func (s chainSection) toDomain(native decimal.Decimal) domain.ChainBalance {
	return domain.ChainBalance{
		NativeBalance: native,
		USDValue:      s.USDValue,
		Network:       s.Network,
	}
}

type walletBalanceResponse struct {
	Address       string          `json:"address"`
	Ethereum      chainSection    `json:"ethereum"`
	Polygon       chainSection    `json:"polygon"`
	Arbitrum      chainSection    `json:"arbitrum"`
	Bsc           chainSection    `json:"bsc"`
	TotalUSDValue decimal.Decimal `json:"total_usd_value"`
	Error         string          `json:"error,omitempty"`
}

func (w walletBalanceResponse) toDomain() domain.WalletBalance {
	return domain.WalletBalance{
		Address: w.Address,
		Chains: map[string]domain.ChainBalance{
			"ethereum": w.Ethereum.toDomain(w.Ethereum.BalanceEth),
			"polygon":  w.Polygon.toDomain(w.Polygon.BalanceMatic),
			"arbitrum": w.Arbitrum.toDomain(w.Arbitrum.BalanceEth),
			"bsc":      w.Bsc.toDomain(w.Bsc.BalanceBnb),
		},
		TotalUSDValue: w.TotalUSDValue,
	}
}

type hederaBalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Error     string `json:"error,omitempty"`
}

type hydraWire struct {
	BalanceHbar decimal.Decimal `json:"balance_hbar"`
	USDValue    decimal.Decimal `json:"usd_value"`
}

type coinbaseWire struct {
	BalanceUSD decimal.Decimal `json:"balance_usd"`
}

type metamaskWire struct {
	BalanceEth decimal.Decimal `json:"balance_eth"`
	USDValue   decimal.Decimal `json:"usd_value"`
}

type aiBalancesWire struct {
	TotalUSDValue decimal.Decimal `json:"total_usd_value"`
	Hydra         hydraWire       `json:"hydra"`
	Coinbase      coinbaseWire    `json:"coinbase"`
	Metamask      metamaskWire    `json:"metamask"`
	Error         string          `json:"error,omitempty"`
}

func (w aiBalancesWire) toDomain() domain.AIBalances {
	return domain.AIBalances{
		Hydra:    domain.WalletFunds{Balance: w.Hydra.BalanceHbar, USDValue: w.Hydra.USDValue},
		Coinbase: domain.WalletFunds{Balance: w.Coinbase.BalanceUSD, USDValue: w.Coinbase.BalanceUSD},
		Metamask: domain.WalletFunds{Balance: w.Metamask.BalanceEth, USDValue: w.Metamask.USDValue},
		TotalUSD: w.TotalUSDValue,
	}
}

func aiBalancesToWire(b domain.AIBalances) aiBalancesWire {
	return aiBalancesWire{
		TotalUSDValue: b.TotalUSD,
		Hydra:         hydraWire{BalanceHbar: b.Hydra.Balance, USDValue: b.Hydra.USDValue},
		Coinbase:      coinbaseWire{BalanceUSD: b.Coinbase.Balance},
		Metamask:      metamaskWire{BalanceEth: b.Metamask.Balance, USDValue: b.Metamask.USDValue},
	}
}

type expenseWire struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (w expenseWire) toDomain() domain.Expense {
	return domain.Expense(w)
}

type commandResultWire struct {
	Action          string          `json:"action,omitempty"`
	Details         string          `json:"details,omitempty"`
	UpdatedBalances *aiBalancesWire `json:"updatedBalances,omitempty"`
	Expense         *expenseWire    `json:"expense,omitempty"`
	Insights        string          `json:"insights,omitempty"`
	Message         string          `json:"message,omitempty"`
	Error           string          `json:"error,omitempty"`
}

func (w commandResultWire) toDomain() domain.CommandResult {
	result := domain.CommandResult{
		Action:   domain.CommandAction(w.Action),
		Details:  w.Details,
		Insights: w.Insights,
		Message:  w.Message,
	}
	if w.UpdatedBalances != nil {
		balances := w.UpdatedBalances.toDomain()
		result.UpdatedBalances = &balances
	}
	if w.Expense != nil {
		expense := w.Expense.toDomain()
		result.Expense = &expense
	}
	return result
}

// ReminderRequest is the payload for registering an email alert.
type ReminderRequest struct {
	Email           string            `json:"email"`
	Condition       string            `json:"condition"`
	Threshold       *decimal.Decimal  `json:"threshold,omitempty"`
	CurrentBalances domain.AIBalances `json:"-"`
}

type reminderRequestWire struct {
	Email           string           `json:"email"`
	Condition       string           `json:"condition"`
	Threshold       *decimal.Decimal `json:"threshold,omitempty"`
	CurrentBalances aiBalancesWire   `json:"currentBalances"`
}
