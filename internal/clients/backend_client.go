package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/cryptora/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second

	// The backend recomputes news, tips and token analyses with an LLM on
	// every hit, so repeated reads within a short window come from memory.
	feedCacheTTL     = 2 * time.Minute
	feedCacheCleanup = 5 * time.Minute
)

// BackendClient talks to the Cryptora backend over plain HTTP. One method per
// backend capability; each method performs exactly one request and decodes the
// response into a domain type. No retries, no backoff, no circuit breaking:
// callers that want such behavior add it themselves.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	feedCache  *gocache.Cache
}

// Option configures a BackendClient.
type Option func(*BackendClient)

// WithHTTPClient substitutes the underlying HTTP client, letting tests inject
// a mock transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *BackendClient) {
		c.httpClient = hc
	}
}

// NewBackendClient creates a client bound to the given base origin.
func NewBackendClient(baseURL string, opts ...Option) *BackendClient {
	c := &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		feedCache:  gocache.New(feedCacheTTL, feedCacheCleanup),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WalletBalance fetches the multi-chain wallet snapshot.
func (c *BackendClient) WalletBalance(ctx context.Context, privateKey string) (domain.WalletBalance, error) {
	const op = "/wallet/balance"
	var wire walletBalanceResponse
	q := url.Values{"private_key": {privateKey}}
	if err := c.getJSON(ctx, op, q, &wire); err != nil {
		return domain.WalletBalance{}, err
	}
	if wire.Error != "" {
		return domain.WalletBalance{}, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.toDomain(), nil
}

// SendEth submits an Ethereum transfer through the backend.
func (c *BackendClient) SendEth(ctx context.Context, fromKey, to string, amount decimal.Decimal) (domain.TransferResult, error) {
	const op = "/wallet/send"
	body := map[string]any{"from_key": fromKey, "to": to, "amount": amount}
	var result domain.TransferResult
	if err := c.postJSON(ctx, op, body, &result); err != nil {
		return domain.TransferResult{}, err
	}
	return result, nil
}

// HederaBalance fetches the Hedera operator account state. The balance is
// reported in tinybars.
func (c *BackendClient) HederaBalance(ctx context.Context) (domain.HederaAccountState, error) {
	const op = "/hedera/account/balance"
	var wire hederaBalanceResponse
	if err := c.getJSON(ctx, op, nil, &wire); err != nil {
		return domain.HederaAccountState{}, err
	}
	if wire.Error != "" {
		return domain.HederaAccountState{}, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return domain.HederaAccountState{AccountID: wire.AccountID, BalanceTinybars: wire.Balance}, nil
}

// TransferHbar submits an HBAR transfer. A reply carrying an error field is
// returned as-is: the transfer state machine decides how to settle the record.
func (c *BackendClient) TransferHbar(ctx context.Context, fromPrivateKey, toAccountID string, amount decimal.Decimal) (domain.TransferResult, error) {
	const op = "/hedera/transfer"
	body := map[string]any{
		"from_private_key": fromPrivateKey,
		"to_account_id":    toAccountID,
		"amount":           amount,
	}
	var result domain.TransferResult
	if err := c.postJSON(ctx, op, body, &result); err != nil {
		return domain.TransferResult{}, err
	}
	return result, nil
}

// QueryAI sends a free-form question to the assistant endpoint.
func (c *BackendClient) QueryAI(ctx context.Context, q string) (string, error) {
	const op = "/llm/query"
	var wire struct {
		Response string `json:"response"`
		Error    string `json:"error,omitempty"`
	}
	if err := c.getJSON(ctx, op, url.Values{"q": {q}}, &wire); err != nil {
		return "", err
	}
	if wire.Error != "" {
		return "", &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.Response, nil
}

// CryptoNews fetches the market news feed as a list of lines.
func (c *BackendClient) CryptoNews(ctx context.Context) ([]string, error) {
	return c.newlineFeed(ctx, "/llm/news", "news")
}

// HederaTips fetches Hedera usage tips as a list of lines.
func (c *BackendClient) HederaTips(ctx context.Context) ([]string, error) {
	return c.newlineFeed(ctx, "/hedera/tips", "tips")
}

// HederaNews fetches Hedera ecosystem news as a list of lines.
func (c *BackendClient) HederaNews(ctx context.Context) ([]string, error) {
	return c.newlineFeed(ctx, "/hedera/news", "news")
}

// CheckTokenSecurity runs the backend's risk analysis for a token address.
func (c *BackendClient) CheckTokenSecurity(ctx context.Context, tokenAddress string) (string, error) {
	const op = "/llm/checktoken"
	cacheKey := op + "?" + tokenAddress
	if cached, ok := c.feedCache.Get(cacheKey); ok {
		return cached.(string), nil
	}
	var wire struct {
		SecurityAnalysis string `json:"security_analysis"`
		Error            string `json:"error,omitempty"`
	}
	if err := c.getJSON(ctx, op, url.Values{"token_address": {tokenAddress}}, &wire); err != nil {
		return "", err
	}
	if wire.Error != "" {
		return "", &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	c.feedCache.SetDefault(cacheKey, wire.SecurityAnalysis)
	return wire.SecurityAnalysis, nil
}

// WalletSummary asks the backend for a prose summary of a wallet.
func (c *BackendClient) WalletSummary(ctx context.Context, address string, balance decimal.Decimal) (string, error) {
	const op = "/llm/wallet-summary"
	var wire struct {
		Response string `json:"response"`
		Error    string `json:"error,omitempty"`
	}
	q := url.Values{"address": {address}, "balance": {balance.String()}}
	if err := c.getJSON(ctx, op, q, &wire); err != nil {
		return "", err
	}
	if wire.Error != "" {
		return "", &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.Response, nil
}

// AIBalances fetches the aggregated AI+ wallet balances.
func (c *BackendClient) AIBalances(ctx context.Context) (domain.AIBalances, error) {
	const op = "/ai/balances"
	var wire aiBalancesWire
	if err := c.getJSON(ctx, op, nil, &wire); err != nil {
		return domain.AIBalances{}, err
	}
	if wire.Error != "" {
		return domain.AIBalances{}, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.toDomain(), nil
}

// SetReminder registers an email alert with the backend.
func (c *BackendClient) SetReminder(ctx context.Context, req ReminderRequest) error {
	const op = "/ai/reminders"
	wire := reminderRequestWire{
		Email:           req.Email,
		Condition:       req.Condition,
		Threshold:       req.Threshold,
		CurrentBalances: aiBalancesToWire(req.CurrentBalances),
	}
	var ack struct {
		Error string `json:"error,omitempty"`
	}
	if err := c.postJSON(ctx, op, wire, &ack); err != nil {
		return err
	}
	if ack.Error != "" {
		return &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(ack.Error)}
	}
	return nil
}

// ProcessAIInput routes a free-text command through the backend interpreter.
func (c *BackendClient) ProcessAIInput(ctx context.Context, input string) (domain.CommandResult, error) {
	const op = "/process-ai-input"
	var wire commandResultWire
	if err := c.postJSON(ctx, op, map[string]string{"input": input}, &wire); err != nil {
		return domain.CommandResult{}, err
	}
	if wire.Error != "" {
		return domain.CommandResult{}, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.toDomain(), nil
}

// Expenses fetches the backend's expense list.
func (c *BackendClient) Expenses(ctx context.Context) ([]domain.Expense, error) {
	const op = "/get-expenses"
	var wire struct {
		Expenses []expenseWire `json:"expenses"`
		Error    string        `json:"error,omitempty"`
	}
	if err := c.getJSON(ctx, op, nil, &wire); err != nil {
		return nil, err
	}
	if wire.Error != "" {
		return nil, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	expenses := make([]domain.Expense, 0, len(wire.Expenses))
	for _, e := range wire.Expenses {
		expenses = append(expenses, e.toDomain())
	}
	return expenses, nil
}

// Insights fetches the backend's spending insights text.
func (c *BackendClient) Insights(ctx context.Context) (string, error) {
	const op = "/get-insights"
	var wire struct {
		Insights string `json:"insights"`
		Error    string `json:"error,omitempty"`
	}
	if err := c.getJSON(ctx, op, nil, &wire); err != nil {
		return "", err
	}
	if wire.Error != "" {
		return "", &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(wire.Error)}
	}
	return wire.Insights, nil
}

// Login authenticates against the backend. A 4xx reply surfaces as an
// ErrKindStatus error.
func (c *BackendClient) Login(ctx context.Context, email, password string) error {
	const op = "/login"
	body := map[string]string{"email": email, "password": password}
	var ack struct {
		Error string `json:"error,omitempty"`
	}
	if err := c.postJSON(ctx, op, body, &ack); err != nil {
		return err
	}
	if ack.Error != "" {
		return &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(ack.Error)}
	}
	return nil
}

func (c *BackendClient) newlineFeed(ctx context.Context, op, field string) ([]string, error) {
	if cached, ok := c.feedCache.Get(op); ok {
		return cached.([]string), nil
	}
	var wire map[string]string
	if err := c.getJSON(ctx, op, nil, &wire); err != nil {
		return nil, err
	}
	if msg := wire["error"]; msg != "" {
		return nil, &BackendError{Kind: ErrKindBackend, Op: op, Err: errors.New(msg)}
	}
	lines := splitLines(wire[field])
	c.feedCache.SetDefault(op, lines)
	return lines, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (c *BackendClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &BackendError{Kind: ErrKindTransport, Op: path, Err: errors.Wrap(err, "build request")}
	}
	return c.do(req, path, out)
}

func (c *BackendClient) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &BackendError{Kind: ErrKindDecode, Op: path, Err: errors.Wrap(err, "marshal request")}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &BackendError{Kind: ErrKindTransport, Op: path, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *BackendClient) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &BackendError{Kind: ErrKindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &BackendError{Kind: ErrKindTransport, Op: op, Err: errors.Wrap(err, "read response body")}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &BackendError{
			Kind: ErrKindStatus,
			Op:   op,
			Err:  fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &BackendError{Kind: ErrKindDecode, Op: op, Err: errors.Wrap(err, "decode response")}
	}
	return nil
}
