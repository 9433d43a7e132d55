package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"qube-server/models"
)

// SnapshotDB stores cart snapshots as JSONB rows keyed by the cart's storage
// key. It satisfies cart.SnapshotStore.
type SnapshotDB struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotDB {
	return &SnapshotDB{db: db}
}

func (s *SnapshotDB) Load(key string) (*models.CartSnapshot, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT data FROM cart_snapshots WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot %q: %w", key, err)
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}

func (s *SnapshotDB) Save(key string, snapshot models.CartSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot %q: %w", key, err)
	}

	query := `
		INSERT INTO cart_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.db.Exec(query, key, raw); err != nil {
		return fmt.Errorf("failed to save cart snapshot %q: %w", key, err)
	}
	return nil
}

func (s *SnapshotDB) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM cart_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete cart snapshot %q: %w", key, err)
	}
	return nil
}
