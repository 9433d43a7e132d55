package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"qube-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const productColumns = `
	id, name, description, price, image_url, category, in_stock, featured,
	rating, num_reviews, min_order_quantity, order_increment,
	tags, benefits, ingredients, certifications, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category,
		&p.InStock, &p.Featured, &p.Rating, &p.NumReviews,
		&p.MinOrderQuantity, &p.OrderIncrement,
		pq.Array(&p.Tags), pq.Array(&p.Benefits), pq.Array(&p.Ingredients), pq.Array(&p.Certifications),
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// fetchProduct loads one product by id. Package-level var so handler tests
// can substitute a catalog stub.
var fetchProduct = func(productID uuid.UUID) (models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return scanProduct(DB.QueryRow(query, productID))
}

// GetProducts handles GET /api/v1/products
func GetProducts(c *gin.Context) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	args := []interface{}{}

	where := ""
	if category := c.Query("category"); category != "" {
		args = append(args, category)
		where = fmt.Sprintf(" WHERE category = $%d", len(args))
	}
	if c.Query("featured") == "true" {
		if where == "" {
			where = " WHERE featured = true"
		} else {
			where += " AND featured = true"
		}
	}
	query += where + " ORDER BY created_at ASC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
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

	c.JSON(http.StatusOK, product)
}
