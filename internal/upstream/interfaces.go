package upstream

import (
	"context"

	"github.com/hindih/gett-gpt-proxy/internal/domain"
)

// TokenFetcher defines the interface for token acquisition.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (*domain.Token, error)
}

// OrderClient defines the interface for the provider's order API.
type OrderClient interface {
	CreateOrder(ctx context.Context, accessToken string, payload *domain.BookingPayload) (*Response, error)
	GetOrder(ctx context.Context, accessToken, orderID string) (*Response, error)
}

// Ensure concrete types implement interfaces.
var (
	_ TokenFetcher = (*TokenClient)(nil)
	_ OrderClient  = (*ProviderClient)(nil)
)
