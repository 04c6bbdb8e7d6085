package walletrpc

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mojomint/coinctl/internal/metrics"
	clierr "github.com/mojomint/coinctl/pkg/errors"
)

const (
	// defaultTimeout is the default HTTP request timeout.
	defaultTimeout = 30 * time.Second

	// maxResponseBodySize limits how much of a response is read.
	maxResponseBodySize = 4 * 1024 * 1024
)

// Logger is the minimal logging surface the client needs.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// ClientOptions contains optional configuration for the wallet RPC client.
type ClientOptions struct {
	// BaseURL overrides the default wallet RPC URL.
	BaseURL string

	// CertPath and KeyPath enable the daemon's mutual-TLS handshake.
	// The daemon uses a self-signed CA, so server verification is
	// disabled when a client pair is configured.
	CertPath string
	KeyPath  string

	// Timeout overrides the default request timeout.
	Timeout time.Duration

	// HTTPClient overrides the transport entirely (used in tests).
	HTTPClient *http.Client

	// Logger receives debug/error lines. Nil disables logging.
	Logger Logger
}

// Client talks to the wallet RPC service over HTTP JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient creates a new wallet RPC client.
func NewClient(opts *ClientOptions) (*Client, error) {
	c := &Client{
		baseURL: "https://localhost:9256",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	if opts == nil {
		return c, nil
	}

	if opts.BaseURL != "" {
		c.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout > 0 {
		c.httpClient.Timeout = opts.Timeout
	}
	c.logger = opts.Logger

	if opts.CertPath != "" && opts.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertPath, opts.KeyPath)
		if err != nil {
			return nil, clierr.Wrap(err, "loading wallet RPC client certificate")
		}
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				//nolint:gosec // G402: the daemon presents a self-signed certificate
				InsecureSkipVerify: true,
				MinVersion:         tls.VersionTLS12,
			},
		}
	}

	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	}

	return c, nil
}

// envelope is the common wrapper around every RPC response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// post submits one RPC call and decodes the payload into out.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	start := time.Now()
	err := c.doPost(ctx, endpoint, body, out)
	metrics.Global.RecordRPCCall(time.Since(start), err)

	if err != nil && c.logger != nil {
		c.logger.Error("wallet rpc %s: %v", endpoint, err)
	}
	return err
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return clierr.Wrap(err, "encoding %s request", endpoint)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return clierr.Wrap(err, "creating %s request", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Debug("wallet rpc %s: %s", endpoint, payload)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return clierr.WithDetails(clierr.ErrNetworkError, map[string]string{
			"endpoint": endpoint,
			"cause":    err.Error(),
		})
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return clierr.WithDetails(clierr.ErrNetworkError, map[string]string{
			"endpoint": endpoint,
			"cause":    err.Error(),
		})
	}

	if resp.StatusCode != http.StatusOK {
		return clierr.WithDetails(clierr.ErrNetworkError, map[string]string{
			"endpoint": endpoint,
			"status":   resp.Status,
		})
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return clierr.Wrap(err, "decoding %s response", endpoint)
	}
	if !env.Success {
		// Remote errors propagate with their original message.
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("%s reported failure", endpoint)
		}
		return clierr.New("RPC_FAILED", msg)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return clierr.Wrap(err, "decoding %s response", endpoint)
		}
	}
	return nil
}

// GetWallets returns the wallets held by the service.
func (c *Client) GetWallets(ctx context.Context) ([]WalletInfo, error) {
	var resp struct {
		Wallets []WalletInfo `json:"wallets"`
	}
	if err := c.post(ctx, "get_wallets", map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return resp.Wallets, nil
}

// GetSyncStatus returns the service's sync state.
func (c *Client) GetSyncStatus(ctx context.Context) (*SyncStatus, error) {
	var resp SyncStatus
	if err := c.post(ctx, "get_sync_status", map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSpendableCoins returns the spendable coin set for a wallet id,
// filtered by the selection config.
func (c *Client) GetSpendableCoins(ctx context.Context, walletID uint32, cs CoinSelectionConfig) (*SpendableCoins, error) {
	body := struct {
		WalletID uint32 `json:"wallet_id"`
		CoinSelectionConfig
	}{WalletID: walletID, CoinSelectionConfig: cs}

	var resp SpendableCoins
	if err := c.post(ctx, "get_spendable_coins", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCoinRecordsByNames looks up coin records by their ids.
func (c *Client) GetCoinRecordsByNames(ctx context.Context, names []CoinID, includeSpent bool) ([]CoinRecord, error) {
	body := struct {
		Names             []CoinID `json:"names"`
		IncludeSpentCoins bool     `json:"include_spent_coins"`
	}{Names: names, IncludeSpentCoins: includeSpent}

	var resp struct {
		CoinRecords []CoinRecord `json:"coin_records"`
	}
	if err := c.post(ctx, "get_coin_records_by_names", body, &resp); err != nil {
		return nil, err
	}
	return resp.CoinRecords, nil
}

// CombineCoins submits a combine request. The request, the transaction
// config, and the timelock window travel flattened in one JSON object.
func (c *Client) CombineCoins(ctx context.Context, req CombineRequest, txc TxConfig, tl TimelockInfo) (*TransactionResponse, error) {
	body := struct {
		CombineRequest
		TxConfig
		TimelockInfo
	}{req, txc, tl}

	var resp TransactionResponse
	if err := c.post(ctx, "combine_coins", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SplitCoins submits a split request.
func (c *Client) SplitCoins(ctx context.Context, req SplitRequest, txc TxConfig, tl TimelockInfo) (*TransactionResponse, error) {
	body := struct {
		SplitRequest
		TxConfig
		TimelockInfo
	}{req, txc, tl}

	var resp TransactionResponse
	if err := c.post(ctx, "split_coins", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
