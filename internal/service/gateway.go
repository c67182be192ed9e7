package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/config"
	"github.com/hindih/gett-gpt-proxy/internal/domain"
	"github.com/hindih/gett-gpt-proxy/internal/upstream"
)

// GatewayService orchestrates token acquisition and request forwarding.
// It holds no mutable state: every inbound request authenticates fresh
// and runs end-to-end on its own.
type GatewayService struct {
	tokens   upstream.TokenFetcher
	orders   upstream.OrderClient
	provider config.ProviderConfig
	logger   *zap.Logger
}

// NewGatewayService creates a new GatewayService.
func NewGatewayService(
	tokens upstream.TokenFetcher,
	orders upstream.OrderClient,
	provider config.ProviderConfig,
	logger *zap.Logger,
) *GatewayService {
	return &GatewayService{
		tokens:   tokens,
		orders:   orders,
		provider: provider,
		logger:   logger,
	}
}

// ForwardResult is an upstream response to be relayed to the caller
// byte-for-byte.
type ForwardResult struct {
	Status int
	Body   []byte
}

// Authenticate fetches a token and returns the token endpoint's raw JSON
// response. Failures come back as *upstream.AuthError so the boundary can
// mirror the upstream's exact status and body.
func (s *GatewayService) Authenticate(ctx context.Context) (json.RawMessage, error) {
	token, err := s.tokens.FetchToken(ctx)
	if err != nil {
		s.logger.Warn("error mapped",
			zap.String("operation", "authenticate"),
			zap.Error(err),
		)
		return nil, err
	}
	return token.Raw, nil
}

// CreateBooking validates and translates the raw booking body, fetches a
// token, forwards the order to the provider and relays its response.
// Upstream status and body pass through verbatim unless the body is not
// parseable JSON, in which case the gateway answers with its own 500.
func (s *GatewayService) CreateBooking(ctx context.Context, rawBody []byte) (*ForwardResult, error) {
	var req domain.BookingRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, s.mapped("create_booking", ErrInvalidJSONBody)
	}

	token, err := s.fetchToken(ctx)
	if err != nil {
		return nil, s.mapped("create_booking", err)
	}

	payload, err := TranslateBooking(req, s.provider.PartnerID)
	if err != nil {
		return nil, s.mapped("create_booking", err)
	}

	resp, err := s.orders.CreateOrder(ctx, token.AccessToken, payload)
	if err != nil {
		return nil, s.mapped("create_booking", err)
	}

	if !json.Valid(resp.Body) {
		return nil, s.mapped("create_booking", &InvalidUpstreamResponseError{Provider: s.provider.Name})
	}

	return &ForwardResult{Status: resp.Status, Body: resp.Body}, nil
}

// GetOrderStatus fetches a token and relays the provider's view of an
// order. Non-2xx provider responses are relayed with their exact status
// and body, before any parse attempt.
func (s *GatewayService) GetOrderStatus(ctx context.Context, orderID string) (*ForwardResult, error) {
	token, err := s.fetchToken(ctx)
	if err != nil {
		return nil, s.mapped("get_order_status", err)
	}

	resp, err := s.orders.GetOrder(ctx, token.AccessToken, orderID)
	if err != nil {
		return nil, s.mapped("get_order_status", err)
	}

	if resp.Status < 200 || resp.Status >= 300 {
		return &ForwardResult{Status: resp.Status, Body: resp.Body}, nil
	}

	if !json.Valid(resp.Body) {
		return nil, s.mapped("get_order_status", &InvalidUpstreamResponseError{Provider: s.provider.Name})
	}

	return &ForwardResult{Status: resp.Status, Body: resp.Body}, nil
}

// fetchToken acquires a token for the forwarding flows. Any auth failure
// collapses to the flat errors these paths expose, regardless of the
// upstream status the direct /auth endpoint would have mirrored.
func (s *GatewayService) fetchToken(ctx context.Context) (*domain.Token, error) {
	token, err := s.tokens.FetchToken(ctx)
	if err != nil {
		if errors.Is(err, upstream.ErrMissingAccessToken) {
			return nil, ErrMissingAccessToken
		}
		return nil, ErrAuthenticationFailed
	}
	if token.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	return token, nil
}

// mapped logs the error-mapped lifecycle point and passes the error on.
func (s *GatewayService) mapped(operation string, err error) error {
	s.logger.Warn("error mapped",
		zap.String("operation", operation),
		zap.Error(err),
	)
	return err
}
