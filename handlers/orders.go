package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"qube-server/cart"
	"qube-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Checkout handles POST /api/v1/checkout
//
// The cart is re-validated against each product's purchase policy before the
// order is written. When any quantity had to be corrected, the corrected cart
// is persisted and returned with 409 so the client can ask the user to
// reconfirm; no order is created on that path.
func Checkout(c *gin.Context) {
	var req struct {
		FirstName  string  `json:"first_name" binding:"required,min=2"`
		LastName   string  `json:"last_name" binding:"required,min=2"`
		Email      string  `json:"email" binding:"required,email"`
		Phone      string  `json:"phone" binding:"required,min=10"`
		Address    string  `json:"address" binding:"required,min=5"`
		City       string  `json:"city" binding:"required,min=2"`
		Country    string  `json:"country" binding:"required,min=2"`
		PostalCode string  `json:"postal_code" binding:"required,min=3"`
		OrderNotes *string `json:"order_notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := cartKey(c)
	store := cart.NewStore(key, Snapshots, Logger)

	items := store.Items()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	if !store.ValidateMinimumQuantities() {
		view := cartView(store)
		view["error"] = "Cart quantities were adjusted to meet minimum order rules, please review and try again"
		c.JSON(http.StatusConflict, view)
		return
	}

	shippingAddress := models.ShippingAddress{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	addressJSON, err := json.Marshal(shippingAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize shipping address"})
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	order := models.Order{
		ID:              uuid.New(),
		OrderNumber:     generateOrderNumber(),
		CartKey:         key,
		Status:          "pending",
		TotalAmount:     store.TotalPrice(),
		ShippingAddress: shippingAddress,
		OrderNotes:      req.OrderNotes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	orderQuery := `
		INSERT INTO orders (
			id, order_number, cart_key, status, total_amount,
			shipping_address, order_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(orderQuery,
		order.ID, order.OrderNumber, order.CartKey, order.Status, order.TotalAmount,
		addressJSON, order.OrderNotes, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range store.Items() {
		orderItem := models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			CreatedAt:   time.Now(),
		}
		_, err = tx.Exec(itemQuery,
			orderItem.ID, orderItem.OrderID, orderItem.ProductID, orderItem.ProductName,
			orderItem.Quantity, orderItem.UnitPrice, orderItem.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order items"})
			return
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit order"})
		return
	}

	store.Discard()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	var addressJSON []byte
	query := `
		SELECT id, order_number, cart_key, status, total_amount,
		       shipping_address, order_notes, created_at, updated_at
		FROM orders WHERE id = $1`
	err = DB.QueryRow(query, orderID).Scan(
		&order.ID, &order.OrderNumber, &order.CartKey, &order.Status, &order.TotalAmount,
		&addressJSON, &order.OrderNotes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode shipping address"})
		return
	}

	itemsQuery := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := DB.Query(itemsQuery, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.CreatedAt)
		if err != nil {
			continue
		}
		order.Items = append(order.Items, item)
	}

	c.JSON(http.StatusOK, order)
}

func generateOrderNumber() string {
	now := time.Now()
	return fmt.Sprintf("QUBE-%d%02d%02d-%d",
		now.Year(), now.Month(), now.Day(), now.Unix()%10000)
}
