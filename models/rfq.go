package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQRequest is a bulk-inquiry submission, independent of the cart.
type RFQRequest struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Company         string    `json:"company" db:"company"`
	Phone           string    `json:"phone" db:"phone"`
	ProductInterest string    `json:"product_interest" db:"product_interest"`
	Quantity        int       `json:"quantity" db:"quantity"`
	Message         string    `json:"message" db:"message"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

func (RFQRequest) TableName() string {
	return "rfq_requests"
}

func (RFQRequest) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS rfq_requests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT NOT NULL,
		phone TEXT NOT NULL,
		product_interest TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		message TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in_progress', 'completed', 'rejected')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
