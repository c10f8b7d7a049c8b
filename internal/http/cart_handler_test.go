package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/cart"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/currency"
	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/storage"
)

func newCartHandler(t *testing.T) *CartHandler {
	t.Helper()
	converter, err := currency.NewConverter("USD")
	require.NoError(t, err)
	carts := cart.NewService(storage.NewMemoryStorage(), zap.NewNop())
	return NewCartHandler(carts, converter, 5*time.Second)
}

func withProfile(r *http.Request, profileID string) *http.Request {
	ctx := context.WithValue(r.Context(), profileIDKey, profileID)
	return r.WithContext(ctx)
}

func TestCartHandler_AddItemAndGet(t *testing.T) {
	handler := newCartHandler(t)

	body, err := json.Marshal(AddItemRequestDTO{
		ID:          "ig-followers:1000",
		Title:       "Instagram Followers",
		Platform:    "instagram",
		Quantity:    2,
		Price:       10,
		TargetInput: "@someone",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := withProfile(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), "p1")
	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Cart.Items, 1)
	assert.Equal(t, 20.0, response.Total)
	assert.Equal(t, "USD", response.Currency)
	assert.Equal(t, "$", response.CurrencySymbol)
}

func TestCartHandler_AddItem_MissingProfile(t *testing.T) {
	handler := newCartHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader([]byte("{}")))
	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCartHandler_AddItem_InvalidQuantity(t *testing.T) {
	handler := newCartHandler(t)

	body, err := json.Marshal(AddItemRequestDTO{
		ID: "ig-followers:1000", Quantity: 0, Price: 10, TargetInput: "@someone",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := withProfile(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body)), "p1")
	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "invalid_request", response.Code)
}

func TestCartHandler_UpdateQuantity_ZeroRemoves(t *testing.T) {
	handler := newCartHandler(t)

	addBody, err := json.Marshal(AddItemRequestDTO{
		ID: "ig-followers:1000", Quantity: 2, Price: 10, TargetInput: "@someone",
	})
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, withProfile(httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(addBody)), "p1"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	updateBody := []byte(`{"quantity":0}`)
	recorder = httptest.NewRecorder()
	request := withProfile(httptest.NewRequest("PUT", "/api/v1/cart/items/ig-followers:1000", bytes.NewReader(updateBody)), "p1")

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("item_id", "ig-followers:1000")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeCtx))

	handler.UpdateQuantity(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Empty(t, response.Cart.Items)
	assert.Equal(t, 0.0, response.Total)
}
