package rail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invoice-wallet-engine/internal/core/domain"
)

// RailError is a classified failure from a provider call. The orchestrator
// reads Kind to build the attempt trail.
type RailError struct {
	Provider   string
	Kind       domain.ErrorKind
	StatusCode int
	Err        error
}

func (e *RailError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rail %s: %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rail %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *RailError) Unwrap() error { return e.Err }

// ErrorKind returns the failure classification.
func (e *RailError) ErrorKind() domain.ErrorKind { return e.Kind }

// HTTPRail implements ports.RailProvider against a provider's REST API.
// Tempo and Circle expose the same surface, so one adapter serves both.
type HTTPRail struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPRail creates a rail client. The http.Client carries no timeout of
// its own: per-call deadlines come from the caller's context.
func NewHTTPRail(name, baseURL, apiKey string) *HTTPRail {
	return &HTTPRail{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// Name returns the provider name used in routing and metrics.
func (r *HTTPRail) Name() string { return r.name }

// Probe checks provider liveness and measures round-trip latency.
func (r *HTTPRail) Probe(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	var out struct {
		Status string `json:"status"`
	}
	if err := r.do(ctx, http.MethodGet, "/v1/health", nil, &out); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// CreateWallet asks the provider to issue an on-rail address for the invoice.
func (r *HTTPRail) CreateWallet(ctx context.Context, invoiceID string) (string, error) {
	body := map[string]string{"invoice_id": invoiceID}
	var out struct {
		Address string `json:"address"`
	}
	if err := r.do(ctx, http.MethodPost, "/v1/wallets", body, &out); err != nil {
		return "", err
	}
	if out.Address == "" {
		return "", &RailError{Provider: r.name, Kind: domain.ErrorKindRejected, Err: fmt.Errorf("provider returned empty wallet address")}
	}
	return out.Address, nil
}

// Mint requests a token mint into the wallet and returns the provider's
// transaction id.
func (r *HTTPRail) Mint(ctx context.Context, walletAddress string, amount int64, currency string) (string, error) {
	body := map[string]any{
		"wallet_address": walletAddress,
		"amount":         amount,
		"currency":       currency,
	}
	var out struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := r.do(ctx, http.MethodPost, "/v1/mint", body, &out); err != nil {
		return "", err
	}
	if out.TransactionID == "" {
		return "", &RailError{Provider: r.name, Kind: domain.ErrorKindRejected, Err: fmt.Errorf("provider returned empty transaction id")}
	}
	return out.TransactionID, nil
}

func (r *HTTPRail) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RailError{Provider: r.name, Kind: domain.ErrorKindTransport, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return &RailError{Provider: r.name, Kind: domain.ErrorKindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		kind := domain.ErrorKindTransport
		if ctx.Err() == context.DeadlineExceeded {
			kind = domain.ErrorKindTimeout
		}
		return &RailError{Provider: r.name, Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		kind := domain.ErrorKindTransport
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			kind = domain.ErrorKindRejected
		}
		return &RailError{
			Provider:   r.name,
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s %s: %s", method, path, bytes.TrimSpace(data)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RailError{Provider: r.name, Kind: domain.ErrorKindTransport, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
