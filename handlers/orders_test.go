package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qube-server/cart"
	"qube-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const checkoutBody = `{
	"first_name": "Asha",
	"last_name": "Nair",
	"email": "asha@medsupply.example",
	"phone": "9876543210",
	"address": "14 Harbour Road",
	"city": "Kochi",
	"country": "India",
	"postal_code": "682001"
}`

func setupCheckoutRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Snapshots = cart.NewMemorySnapshotStore()
	Logger = zap.NewNop()

	router := gin.New()
	router.POST("/api/v1/checkout", Checkout)
	return router
}

func postCheckout(t *testing.T, router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Cart-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	router := setupCheckoutRouter(t)

	w := postCheckout(t, router, "empty-cart", checkoutBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCheckoutRejectsInvalidShippingFields(t *testing.T) {
	router := setupCheckoutRouter(t)

	w := postCheckout(t, router, "any", `{"first_name": "A"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutBlocksUntilQuantitiesReconfirmed(t *testing.T) {
	router := setupCheckoutRouter(t)

	// A stale client persisted an out-of-policy quantity
	p := models.Product{ID: uuid.New(), Name: "Biotine", Price: 800, MinOrderQuantity: 20, OrderIncrement: 10}
	err := Snapshots.Save(cart.SnapshotKey("stale-cart"), models.CartSnapshot{
		Items: []models.CartLineItem{{Product: p, Quantity: 15}},
	})
	require.NoError(t, err)

	w := postCheckout(t, router, "stale-cart", checkoutBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error string                `json:"error"`
		Items []models.CartLineItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 20, resp.Items[0].Quantity)

	// The correction was persisted for the reconfirm round
	store := cart.NewStore("stale-cart", Snapshots, nil)
	assert.True(t, store.ValidateMinimumQuantities())
	assert.Equal(t, 20, store.Items()[0].Quantity)
}
