package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product. MinOrderQuantity and OrderIncrement
// carry the per-product purchase policy; zero values mean "use the store
// defaults" (20 and 10).
type Product struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	Price            float64   `json:"price" db:"price"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	Category         string    `json:"category" db:"category"`
	InStock          bool      `json:"in_stock" db:"in_stock"`
	Featured         bool      `json:"featured" db:"featured"`
	Rating           float64   `json:"rating" db:"rating"`
	NumReviews       int       `json:"num_reviews" db:"num_reviews"`
	MinOrderQuantity int       `json:"min_order_quantity" db:"min_order_quantity"`
	OrderIncrement   int       `json:"order_increment" db:"order_increment"`
	Tags             []string  `json:"tags,omitempty" db:"tags"`
	Benefits         []string  `json:"benefits,omitempty" db:"benefits"`
	Ingredients      []string  `json:"ingredients,omitempty" db:"ingredients"`
	Certifications   []string  `json:"certifications,omitempty" db:"certifications"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		category VARCHAR(50) NOT NULL CHECK (category IN ('supplements', 'skincare', 'vitamins', 'personal-care')),
		in_stock BOOLEAN NOT NULL DEFAULT true,
		featured BOOLEAN NOT NULL DEFAULT false,
		rating NUMERIC(3,2) NOT NULL DEFAULT 0,
		num_reviews INT NOT NULL DEFAULT 0,
		min_order_quantity INT NOT NULL DEFAULT 20,
		order_increment INT NOT NULL DEFAULT 10,
		tags TEXT[] NOT NULL DEFAULT '{}',
		benefits TEXT[] NOT NULL DEFAULT '{}',
		ingredients TEXT[] NOT NULL DEFAULT '{}',
		certifications TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
