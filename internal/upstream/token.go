package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/config"
	"github.com/hindih/gett-gpt-proxy/internal/domain"
)

// TokenClient fetches bearer tokens via the client-credentials grant.
// One attempt per call, no retries, no caching: each token lives for
// exactly one inbound request.
type TokenClient struct {
	cfg        config.AuthConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTokenClient creates a new TokenClient.
func NewTokenClient(cfg config.AuthConfig, timeout time.Duration, logger *zap.Logger) *TokenClient {
	return &TokenClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchToken sends the client-credentials request to the configured token
// endpoint and extracts the access token. Any failure is an *AuthError.
func (c *TokenClient) FetchToken(ctx context.Context) (*domain.Token, error) {
	body, contentType, err := c.buildRequestBody()
	if err != nil {
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: "failed to encode token request: " + err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, body)
	if err != nil {
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: "failed to build token request: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("outbound call issued",
		zap.String("dependency", "auth"),
		zap.String("url", c.cfg.URL),
	)
	start := time.Now()

	txn := newrelic.FromContext(ctx)
	seg := newrelic.StartExternalSegment(txn, req)
	resp, err := c.httpClient.Do(req)
	seg.Response = resp
	seg.End()
	if err != nil {
		c.logger.Warn("outbound call failed",
			zap.String("dependency", "auth"),
			zap.Error(err),
		)
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: "failed to reach token endpoint: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: "failed to read token response: " + err.Error(), Err: err}
	}

	c.logger.Debug("outbound call completed",
		zap.String("dependency", "auth"),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: "invalid JSON from token endpoint: " + err.Error(), Err: err}
	}
	if parsed.AccessToken == "" {
		return nil, &AuthError{Status: http.StatusInternalServerError, Body: ErrMissingAccessToken.Error(), Err: ErrMissingAccessToken}
	}

	return &domain.Token{
		AccessToken: parsed.AccessToken,
		Raw:         json.RawMessage(respBody),
	}, nil
}

// buildRequestBody encodes the credentials per the deployment's fixed
// content-encoding choice.
func (c *TokenClient) buildRequestBody() (io.Reader, string, error) {
	if c.cfg.Encoding == config.AuthEncodingForm {
		form := url.Values{}
		form.Set("client_id", c.cfg.ClientID)
		form.Set("client_secret", c.cfg.ClientSecret)
		form.Set("grant_type", "client_credentials")
		form.Set("scope", c.cfg.Scope)
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	}

	creds := domain.Credentials{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		GrantType:    "client_credentials",
		Scope:        c.cfg.Scope,
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}
