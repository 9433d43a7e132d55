package models

import "time"

// CartLineItem pairs a product with a purchase quantity. The product is
// embedded whole so a persisted cart can be rebuilt without a catalog lookup;
// price and policy fields travel with the line item.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot is the persisted shape of a cart: the line items plus the
// drawer visibility flag. Writing a snapshot and reading it back must yield
// an equal cart.
type CartSnapshot struct {
	Items  []CartLineItem `json:"items"`
	IsOpen bool           `json:"is_open"`
}

// CartSnapshotRecord is the durable key-value row a snapshot is stored in.
type CartSnapshotRecord struct {
	Key       string    `json:"key" db:"key"`
	Data      []byte    `json:"data" db:"data"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (CartSnapshotRecord) TableName() string {
	return "cart_snapshots"
}

func (CartSnapshotRecord) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS cart_snapshots (
		key TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
