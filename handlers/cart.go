package handlers

import (
	"database/sql"
	"net/http"

	"qube-server/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// cartKeyHeader identifies the client's cart across requests. The server
// mints a key when the client does not present one and echoes it back either
// way, so the client can persist it.
const cartKeyHeader = "X-Cart-Key"

func cartKey(c *gin.Context) string {
	key := c.GetHeader(cartKeyHeader)
	if key == "" {
		key = uuid.New().String()
	}
	c.Header(cartKeyHeader, key)
	return key
}

func loadCart(c *gin.Context) *cart.Store {
	return cart.NewStore(cartKey(c), Snapshots, Logger)
}

func cartView(store *cart.Store) gin.H {
	return gin.H{
		"items":       store.Items(),
		"total_items": store.TotalItems(),
		"total_price": store.TotalPrice(),
		"is_open":     store.IsOpen(),
	}
}

// GetCart handles GET /api/v1/cart
func GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(loadCart(c)))
}

// AddToCart handles POST /api/v1/cart/items
func AddToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  *int   `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := fetchProduct(productID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	// Absent quantity means "one standard batch": the store-wide default, then
	// normalized under the product's own policy.
	requested := cart.DefaultPolicy().Minimum
	if req.Quantity != nil {
		requested = *req.Quantity
	}

	store := loadCart(c)
	adjusted := store.AddItem(product, requested)

	view := cartView(store)
	view["adjusted"] = adjusted
	c.JSON(http.StatusOK, view)
}

// UpdateCartItem handles PUT /api/v1/cart/items/:productId
func UpdateCartItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := loadCart(c)
	adjusted := store.UpdateQuantity(productID, *req.Quantity)

	view := cartView(store)
	view["adjusted"] = adjusted
	c.JSON(http.StatusOK, view)
}

// RemoveFromCart handles DELETE /api/v1/cart/items/:productId
func RemoveFromCart(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	store := loadCart(c)
	store.RemoveItem(productID)
	c.JSON(http.StatusOK, cartView(store))
}

// ClearCart handles DELETE /api/v1/cart
func ClearCart(c *gin.Context) {
	store := loadCart(c)
	store.ClearCart()
	c.JSON(http.StatusOK, cartView(store))
}

// OpenCart handles POST /api/v1/cart/open
func OpenCart(c *gin.Context) {
	store := loadCart(c)
	store.OpenCart()
	c.JSON(http.StatusOK, cartView(store))
}

// CloseCart handles POST /api/v1/cart/close
func CloseCart(c *gin.Context) {
	store := loadCart(c)
	store.CloseCart()
	c.JSON(http.StatusOK, cartView(store))
}
