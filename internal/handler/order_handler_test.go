package handler

import (
	"net/http"
	"testing"

	"furnistore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_LastWithoutOrder(t *testing.T) {
	f := newFixture(t)

	// The confirmation page redirects home when no order exists.
	var errResp model.ErrorResponse
	res := f.get("/api/orders/last", &errResp)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, model.ErrCodeNoOrder, errResp.Error)
	assert.Equal(t, "/", errResp.Redirect)
}

func TestOrderHandler_LastAfterSubmit(t *testing.T) {
	f := newFixture(t)
	f.post("/api/cart/items", map[string]any{"productId": 1, "quantity": 2}, nil)

	var placed model.Order
	res := f.post("/api/checkout", submitBody(), &placed)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var got model.Order
	res = f.get("/api/orders/last", &got)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, placed.ID, got.ID)
	assert.Equal(t, placed.Number, got.Number)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Sofa da Milano", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
}
