package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hindih/gett-gpt-proxy/internal/domain"
	"github.com/hindih/gett-gpt-proxy/internal/redis"
	"github.com/hindih/gett-gpt-proxy/internal/upstream"
)

// ──────────────────────────────────────────────
// MOCK TOKEN CLIENT
// ──────────────────────────────────────────────

// MockTokenClient is a mock implementation of upstream.TokenFetcher.
type MockTokenClient struct {
	Token *domain.Token

	// Counters for verification
	FetchCallCount int32

	// Error injection
	FetchError error
}

// NewMockTokenClient creates a mock that returns the given access token.
func NewMockTokenClient(accessToken string) *MockTokenClient {
	return &MockTokenClient{
		Token: &domain.Token{
			AccessToken: accessToken,
			Raw:         []byte(`{"access_token":"` + accessToken + `"}`),
		},
	}
}

func (m *MockTokenClient) FetchToken(ctx context.Context) (*domain.Token, error) {
	atomic.AddInt32(&m.FetchCallCount, 1)
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	return m.Token, nil
}

// ──────────────────────────────────────────────
// MOCK ORDER CLIENT
// ──────────────────────────────────────────────

// MockOrderClient is a mock implementation of upstream.OrderClient.
type MockOrderClient struct {
	mu sync.Mutex

	CreateResponse *upstream.Response
	GetResponse    *upstream.Response

	// Captured arguments for verification
	LastAccessToken string
	LastPayload     *domain.BookingPayload
	LastOrderID     string

	// Counters for verification
	CreateCallCount int32
	GetCallCount    int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockOrderClient creates a new mock order client.
func NewMockOrderClient() *MockOrderClient {
	return &MockOrderClient{}
}

func (m *MockOrderClient) CreateOrder(ctx context.Context, accessToken string, payload *domain.BookingPayload) (*upstream.Response, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAccessToken = accessToken
	m.LastPayload = payload
	return m.CreateResponse, nil
}

func (m *MockOrderClient) GetOrder(ctx context.Context, accessToken, orderID string) (*upstream.Response, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAccessToken = accessToken
	m.LastOrderID = orderID
	return m.GetResponse, nil
}

// ──────────────────────────────────────────────
// MOCK IDEMPOTENCY STORE
// ──────────────────────────────────────────────

// MockIdempotencyStore is an in-memory implementation of
// redis.IdempotencyStoreInterface.
type MockIdempotencyStore struct {
	mu        sync.Mutex
	responses map[string]*redis.CachedResponse

	// Error injection
	GetError error
	SetError error
}

// NewMockIdempotencyStore creates a new mock idempotency store.
func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		responses: make(map[string]*redis.CachedResponse),
	}
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) (*redis.CachedResponse, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.responses[key], nil
}

func (m *MockIdempotencyStore) Set(ctx context.Context, key string, response *redis.CachedResponse, ttl time.Duration) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = response
	return nil
}
