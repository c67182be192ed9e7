package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/hindih/gett-gpt-proxy/internal/config"
	"github.com/hindih/gett-gpt-proxy/internal/service"
	"github.com/hindih/gett-gpt-proxy/internal/upstream"
)

func newGateway(tokens upstream.TokenFetcher, orders upstream.OrderClient) *service.GatewayService {
	return service.NewGatewayService(tokens, orders, config.ProviderConfig{
		PartnerID: "partner-42",
		Name:      "Gett",
	}, zap.NewNop())
}

func validBookingBody(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(validBookingRequest())
	if err != nil {
		t.Fatalf("failed to marshal booking request: %v", err)
	}
	return data
}

// ──────────────────────────────────────────────
// 1. AUTHENTICATE
// ──────────────────────────────────────────────

func TestAuthenticate_Success_ReturnsRawTokenResponse(t *testing.T) {
	t.Parallel()

	tokens := NewMockTokenClient("abc123")
	gateway := newGateway(tokens, NewMockOrderClient())

	raw, err := gateway.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if string(raw) != `{"access_token":"abc123"}` {
		t.Errorf("expected raw token response to be relayed untouched, got %s", raw)
	}
	if tokens.FetchCallCount != 1 {
		t.Errorf("expected exactly one token fetch, got %d", tokens.FetchCallCount)
	}
}

func TestAuthenticate_UpstreamFailure_MirrorsStatusAndBody(t *testing.T) {
	t.Parallel()

	tokens := NewMockTokenClient("")
	tokens.FetchError = &upstream.AuthError{Status: 401, Body: `{"error":"invalid_client"}`}
	gateway := newGateway(tokens, NewMockOrderClient())

	_, err := gateway.Authenticate(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var authErr *upstream.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got: %v", err)
	}
	if authErr.Status != 401 {
		t.Errorf("expected status 401, got %d", authErr.Status)
	}
	if authErr.Body != `{"error":"invalid_client"}` {
		t.Errorf("expected upstream body preserved, got %q", authErr.Body)
	}
}

// ──────────────────────────────────────────────
// 2. CREATE BOOKING
// ──────────────────────────────────────────────

func TestCreateBooking_Success_RelaysUpstreamResponse(t *testing.T) {
	t.Parallel()

	tokens := NewMockTokenClient("abc123")
	orders := NewMockOrderClient()
	orders.CreateResponse = &upstream.Response{Status: 201, Body: []byte(`{"order_id":"X1"}`)}
	gateway := newGateway(tokens, orders)

	result, err := gateway.CreateBooking(context.Background(), validBookingBody(t))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Status != 201 {
		t.Errorf("expected status 201, got %d", result.Status)
	}
	if string(result.Body) != `{"order_id":"X1"}` {
		t.Errorf("expected upstream body relayed verbatim, got %s", result.Body)
	}
	if orders.LastAccessToken != "abc123" {
		t.Errorf("expected order sent with token abc123, got %q", orders.LastAccessToken)
	}
	if orders.LastPayload == nil || orders.LastPayload.PartnerID != "partner-42" {
		t.Error("expected translated payload with configured partner id")
	}
}

func TestCreateBooking_UpstreamError_IsRelayedVerbatim(t *testing.T) {
	t.Parallel()

	orders := NewMockOrderClient()
	orders.CreateResponse = &upstream.Response{Status: 422, Body: []byte(`{"error":"no supply"}`)}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	result, err := gateway.CreateBooking(context.Background(), validBookingBody(t))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Status != 422 || string(result.Body) != `{"error":"no supply"}` {
		t.Errorf("expected upstream 422 relayed, got %d %s", result.Status, result.Body)
	}
}

func TestCreateBooking_MalformedBody_Fails(t *testing.T) {
	t.Parallel()

	tokens := NewMockTokenClient("abc123")
	gateway := newGateway(tokens, NewMockOrderClient())

	_, err := gateway.CreateBooking(context.Background(), []byte(`{not json`))
	if !errors.Is(err, service.ErrInvalidJSONBody) {
		t.Fatalf("expected ErrInvalidJSONBody, got: %v", err)
	}
	if tokens.FetchCallCount != 0 {
		t.Error("expected no token fetch for a malformed body")
	}
}

func TestCreateBooking_AuthFailure_CollapsesToFlatError(t *testing.T) {
	t.Parallel()

	// Any upstream auth status collapses in this path, even ones /auth
	// would mirror.
	tokens := NewMockTokenClient("")
	tokens.FetchError = &upstream.AuthError{Status: 401, Body: `{"error":"invalid_client"}`}
	orders := NewMockOrderClient()
	gateway := newGateway(tokens, orders)

	_, err := gateway.CreateBooking(context.Background(), validBookingBody(t))
	if !errors.Is(err, service.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got: %v", err)
	}
	if orders.CreateCallCount != 0 {
		t.Error("expected no order creation after auth failure")
	}
}

func TestCreateBooking_MissingAccessToken_Fails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		setup func(*MockTokenClient)
	}{
		{
			name: "client reports missing token",
			setup: func(m *MockTokenClient) {
				m.FetchError = &upstream.AuthError{
					Status: 500,
					Body:   upstream.ErrMissingAccessToken.Error(),
					Err:    upstream.ErrMissingAccessToken,
				}
			},
		},
		{
			name: "empty token in result",
			setup: func(m *MockTokenClient) {
				m.Token.AccessToken = ""
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := NewMockTokenClient("abc123")
			tc.setup(tokens)
			gateway := newGateway(tokens, NewMockOrderClient())

			_, err := gateway.CreateBooking(context.Background(), validBookingBody(t))
			if !errors.Is(err, service.ErrMissingAccessToken) {
				t.Fatalf("expected ErrMissingAccessToken, got: %v", err)
			}
		})
	}
}

func TestCreateBooking_MissingField_FailsBeforeForwarding(t *testing.T) {
	t.Parallel()

	body := []byte(`{"passenger_name":"Dana Levi"}`)
	orders := NewMockOrderClient()
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	_, err := gateway.CreateBooking(context.Background(), body)
	var missingField *service.MissingFieldError
	if !errors.As(err, &missingField) {
		t.Fatalf("expected MissingFieldError, got: %v", err)
	}
	if orders.CreateCallCount != 0 {
		t.Error("expected no upstream call for an invalid booking")
	}
}

func TestCreateBooking_NonJSONUpstreamBody_FailsWithInvalidResponse(t *testing.T) {
	t.Parallel()

	orders := NewMockOrderClient()
	orders.CreateResponse = &upstream.Response{Status: 200, Body: []byte("<html>gateway timeout</html>")}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	_, err := gateway.CreateBooking(context.Background(), validBookingBody(t))
	var invalid *service.InvalidUpstreamResponseError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUpstreamResponseError, got: %v", err)
	}
	if invalid.Error() != "Invalid response from Gett" {
		t.Errorf("expected fixed diagnostic message, got %q", invalid.Error())
	}
}

// ──────────────────────────────────────────────
// 3. GET ORDER STATUS
// ──────────────────────────────────────────────

func TestGetOrderStatus_Success_RelaysUpstreamResponse(t *testing.T) {
	t.Parallel()

	orders := NewMockOrderClient()
	orders.GetResponse = &upstream.Response{Status: 200, Body: []byte(`{"order_id":"XYZ","status":"driver_assigned"}`)}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	result, err := gateway.GetOrderStatus(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Status != 200 {
		t.Errorf("expected status 200, got %d", result.Status)
	}
	if string(result.Body) != `{"order_id":"XYZ","status":"driver_assigned"}` {
		t.Errorf("expected upstream body relayed verbatim, got %s", result.Body)
	}
	if orders.LastOrderID != "XYZ" {
		t.Errorf("expected order id XYZ, got %q", orders.LastOrderID)
	}
	if orders.LastAccessToken != "abc123" {
		t.Errorf("expected bearer token abc123, got %q", orders.LastAccessToken)
	}
}

func TestGetOrderStatus_UpstreamNotFound_IsRelayedExactly(t *testing.T) {
	t.Parallel()

	orders := NewMockOrderClient()
	orders.GetResponse = &upstream.Response{Status: 404, Body: []byte(`{"error":"not_found"}`)}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	result, err := gateway.GetOrderStatus(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Status != 404 {
		t.Errorf("expected status 404, got %d", result.Status)
	}
	if string(result.Body) != `{"error":"not_found"}` {
		t.Errorf("expected upstream body relayed, got %s", result.Body)
	}
}

func TestGetOrderStatus_NonJSONFailureBody_IsStillRelayed(t *testing.T) {
	t.Parallel()

	// Failed statuses are relayed before any parse attempt.
	orders := NewMockOrderClient()
	orders.GetResponse = &upstream.Response{Status: 502, Body: []byte("bad gateway")}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	result, err := gateway.GetOrderStatus(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Status != 502 || string(result.Body) != "bad gateway" {
		t.Errorf("expected upstream failure relayed untouched, got %d %s", result.Status, result.Body)
	}
}

func TestGetOrderStatus_NonJSONSuccessBody_Fails(t *testing.T) {
	t.Parallel()

	orders := NewMockOrderClient()
	orders.GetResponse = &upstream.Response{Status: 200, Body: []byte("ok")}
	gateway := newGateway(NewMockTokenClient("abc123"), orders)

	_, err := gateway.GetOrderStatus(context.Background(), "XYZ")
	var invalid *service.InvalidUpstreamResponseError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUpstreamResponseError, got: %v", err)
	}
}

func TestGetOrderStatus_AuthFailure_CollapsesToFlatError(t *testing.T) {
	t.Parallel()

	tokens := NewMockTokenClient("")
	tokens.FetchError = &upstream.AuthError{Status: 403, Body: `{"error":"forbidden"}`}
	orders := NewMockOrderClient()
	gateway := newGateway(tokens, orders)

	_, err := gateway.GetOrderStatus(context.Background(), "XYZ")
	if !errors.Is(err, service.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got: %v", err)
	}
	if orders.GetCallCount != 0 {
		t.Error("expected no upstream call after auth failure")
	}
}
