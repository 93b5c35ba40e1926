package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

func TestWalletBalanceDecodesChains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/balance", r.URL.Path)
		assert.Equal(t, "0xkey", r.URL.Query().Get("private_key"))
		w.Write([]byte(`{
			"address": "0xabc",
			"ethereum": {"balance_eth": "0.5", "usd_value": "1250", "network": "Ethereum"},
			"polygon": {"balance_matic": "100", "usd_value": "80", "network": "Polygon"},
			"arbitrum": {"balance_eth": "0.1", "usd_value": "250", "network": "Arbitrum"},
			"bsc": {"balance_bnb": "2", "usd_value": "600", "network": "BSC"},
			"total_usd_value": "2180"
		}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	balance, err := client.WalletBalance(context.Background(), "0xkey")
	require.NoError(t, err)

	assert.Equal(t, "0xabc", balance.Address)
	assert.True(t, balance.TotalUSDValue.Equal(decimal.NewFromInt(2180)))
	assert.True(t, balance.Chains["ethereum"].NativeBalance.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, balance.Chains["polygon"].NativeBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, balance.Chains["bsc"].NativeBalance.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "Polygon", balance.Chains["polygon"].Network)
}

func TestErrorFieldInOKReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error": "wallet service unavailable"}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	_, err := client.WalletBalance(context.Background(), "0xkey")
	require.Error(t, err)

	assert.Equal(t, ErrKindBackend, KindOf(err))
	assert.Contains(t, err.Error(), "wallet service unavailable")
	assert.False(t, IsUnreachable(err))
}

func TestNon2xxReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	_, err := client.HederaBalance(context.Background())
	require.Error(t, err)

	assert.Equal(t, ErrKindStatus, KindOf(err))
	assert.Contains(t, err.Error(), "500")
	assert.False(t, IsUnreachable(err))
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewBackendClient(srv.URL)
	_, err := client.HederaBalance(context.Background())
	require.Error(t, err)

	assert.Equal(t, ErrKindTransport, KindOf(err))
	assert.True(t, IsUnreachable(err))
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"account_id": 12`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	_, err := client.HederaBalance(context.Background())
	require.Error(t, err)

	assert.Equal(t, ErrKindDecode, KindOf(err))
}

func TestTransferHbarPassesErrorFieldThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hedera/transfer", r.URL.Path)
		w.Write([]byte(`{"status": "FAILED", "error": "insufficient payer balance"}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	result, err := client.TransferHbar(context.Background(), "key", "0.0.50", decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.Equal(t, string(domain.TransferFailed), result.Status)
	assert.Equal(t, "insufficient payer balance", result.Error)
}

func TestNewlineFeedCaching(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(`{"news": "line one\n\n  line two  \nline three"}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)

	news, err := client.CryptoNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"line one", "line two", "line three"}, news)

	// the second read within the TTL comes from memory
	news, err = client.CryptoNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"line one", "line two", "line three"}, news)
	assert.Equal(t, 1, hits)
}

func TestProcessAIInputDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process-ai-input", r.URL.Path)
		w.Write([]byte(`{
			"action": "transfer",
			"details": "$10 transferred from Hydra to MetaMask",
			"updatedBalances": {
				"total_usd_value": "52",
				"hydra": {"balance_hbar": "300", "usd_value": "15"},
				"coinbase": {"balance_usd": "2"},
				"metamask": {"balance_eth": "0.014", "usd_value": "35"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	result, err := client.ProcessAIInput(context.Background(), "transfer $10 from hydra to metamask")
	require.NoError(t, err)

	assert.Equal(t, domain.ActionTransfer, result.Action)
	require.NotNil(t, result.UpdatedBalances)
	assert.True(t, result.UpdatedBalances.Hydra.USDValue.Equal(decimal.NewFromInt(15)))
	// the coinbase wallet is denominated in USD so both fields carry the same value
	assert.True(t, result.UpdatedBalances.Coinbase.USDValue.Equal(decimal.NewFromInt(2)))
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL)
	err := client.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, ErrKindStatus, KindOf(err))
}
