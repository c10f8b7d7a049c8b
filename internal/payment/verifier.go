package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// MinTransactionIDLength is the shortest transaction id worth sending
// to the payment provider; anything shorter fails locally with a
// format error before any network I/O.
const MinTransactionIDLength = 10

var ErrInvalidTransactionID = errors.New("transaction id must be at least 10 characters")

// VerifyResult is the payment collaborator's verdict on a transaction.
type VerifyResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Verifier checks a transaction id with the payment provider.
type Verifier interface {
	Verify(ctx context.Context, transactionID string) (*VerifyResult, error)
}

// HTTPVerifier calls the payment provider over HTTP, wrapped in a
// circuit breaker so a flapping provider fails fast instead of
// stalling checkout.
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*VerifyResult]
}

func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	settings := gobreaker.Settings{
		Name:    "payment-verify",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &HTTPVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*VerifyResult](settings),
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, transactionID string) (*VerifyResult, error) {
	if len(transactionID) < MinTransactionIDLength {
		return nil, ErrInvalidTransactionID
	}

	return v.breaker.Execute(func() (*VerifyResult, error) {
		body, err := json.Marshal(map[string]string{"transaction_id": transactionID})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			v.baseURL+"/v1/transactions/verify", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := v.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("payment verify request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("payment provider unavailable: status %d", resp.StatusCode)
		}

		var result VerifyResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode verify response: %w", err)
		}
		return &result, nil
	})
}
