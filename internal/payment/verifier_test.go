package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ShortIDFailsWithoutNetworkCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	sut := NewHTTPVerifier(server.URL, time.Second)

	_, err := sut.Verify(context.Background(), "short")
	assert.ErrorIs(t, err, ErrInvalidTransactionID)
	assert.Equal(t, int32(0), calls.Load())
}

func TestVerify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "TXN-1234567890", req["transaction_id"])

		_ = json.NewEncoder(w).Encode(VerifyResult{Success: true, OrderID: "ord-1"})
	}))
	defer server.Close()

	sut := NewHTTPVerifier(server.URL, time.Second)

	got, err := sut.Verify(context.Background(), "TXN-1234567890")
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, "ord-1", got.OrderID)
}

func TestVerify_ProviderRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(VerifyResult{Success: false, Error: "transaction not found"})
	}))
	defer server.Close()

	sut := NewHTTPVerifier(server.URL, time.Second)

	got, err := sut.Verify(context.Background(), "TXN-1234567890")
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Equal(t, "transaction not found", got.Error)
}

func TestVerify_ServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sut := NewHTTPVerifier(server.URL, time.Second)

	_, err := sut.Verify(context.Background(), "TXN-1234567890")
	require.ErrorContains(t, err, "payment provider unavailable")
}
