package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/config"
	"github.com/hindih/gett-gpt-proxy/internal/domain"
)

// Response is a raw provider response. Status and Body are relayed to the
// caller by the gateway; interpretation of non-2xx statuses belongs to
// the forwarding rules, not this client.
type Response struct {
	Status int
	Body   []byte
}

// ProviderClient calls the Gett order API with a bearer token.
type ProviderClient struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewProviderClient creates a new ProviderClient.
func NewProviderClient(cfg config.ProviderConfig, logger *zap.Logger) *ProviderClient {
	return &ProviderClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// CreateOrder posts an order-creation payload to the provider.
func (c *ProviderClient) CreateOrder(ctx context.Context, accessToken string, payload *domain.BookingPayload) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", accessToken, bytes.NewReader(data))
}

// GetOrder fetches the current state of an order.
func (c *ProviderClient) GetOrder(ctx context.Context, accessToken, orderID string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/orders/"+orderID, accessToken, nil)
}

func (c *ProviderClient) do(ctx context.Context, method, url, accessToken string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", strings.ToLower(c.cfg.Name), err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("outbound call issued",
		zap.String("dependency", c.cfg.Name),
		zap.String("method", method),
		zap.String("url", url),
	)
	start := time.Now()

	txn := newrelic.FromContext(ctx)
	seg := newrelic.StartExternalSegment(txn, req)
	resp, err := c.httpClient.Do(req)
	seg.Response = resp
	seg.End()
	if err != nil {
		c.logger.Warn("outbound call failed",
			zap.String("dependency", c.cfg.Name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to reach %s: %w", c.cfg.Name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", c.cfg.Name, err)
	}

	c.logger.Debug("outbound call completed",
		zap.String("dependency", c.cfg.Name),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}
