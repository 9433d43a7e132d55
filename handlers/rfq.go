package handlers

import (
	"net/http"
	"time"

	"qube-server/cart"
	"qube-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateRFQ handles POST /api/v1/rfq
//
// Unlike the cart, the RFQ form is a validation boundary: an out-of-policy
// quantity is reported back to the user, never silently corrected. The rule
// itself is the store-wide default policy, not a per-product one.
func CreateRFQ(c *gin.Context) {
	var req struct {
		Name            string `json:"name" binding:"required,min=2"`
		Email           string `json:"email" binding:"required,email"`
		Company         string `json:"company" binding:"required,min=2"`
		Phone           string `json:"phone" binding:"required,min=10"`
		ProductInterest string `json:"product_interest" binding:"required,min=2"`
		Quantity        int    `json:"quantity" binding:"required"`
		Message         string `json:"message" binding:"required,min=10"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cart.DefaultPolicy().Check(req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq := models.RFQRequest{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           req.Email,
		Company:         req.Company,
		Phone:           req.Phone,
		ProductInterest: req.ProductInterest,
		Quantity:        req.Quantity,
		Message:         req.Message,
		Status:          "pending",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	query := `
		INSERT INTO rfq_requests (
			id, name, email, company, phone, product_interest,
			quantity, message, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := DB.Exec(query,
		rfq.ID, rfq.Name, rfq.Email, rfq.Company, rfq.Phone, rfq.ProductInterest,
		rfq.Quantity, rfq.Message, rfq.Status, rfq.CreatedAt, rfq.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quote request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quote request submitted successfully",
		"rfq":     rfq,
	})
}

// GetRFQ handles GET /api/v1/rfq/:id
func GetRFQ(c *gin.Context) {
	rfqID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RFQ ID"})
		return
	}

	var rfq models.RFQRequest
	query := `
		SELECT id, name, email, company, phone, product_interest,
		       quantity, message, status, created_at, updated_at
		FROM rfq_requests WHERE id = $1`
	err = DB.QueryRow(query, rfqID).Scan(
		&rfq.ID, &rfq.Name, &rfq.Email, &rfq.Company, &rfq.Phone, &rfq.ProductInterest,
		&rfq.Quantity, &rfq.Message, &rfq.Status, &rfq.CreatedAt, &rfq.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
		return
	}

	c.JSON(http.StatusOK, rfq)
}
