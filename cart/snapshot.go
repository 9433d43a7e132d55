package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"qube-server/models"
)

// SnapshotStore is the persistence port for carts. Implementations store one
// serialized snapshot per key. Load returns (nil, nil) when no snapshot
// exists for the key.
type SnapshotStore interface {
	Load(key string) (*models.CartSnapshot, error)
	Save(key string, snapshot models.CartSnapshot) error
	Delete(key string) error
}

// MemorySnapshotStore keeps snapshots in process memory. It backs tests and
// single-process deployments without a database.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (m *MemorySnapshotStore) Load(key string) (*models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	var snapshot models.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}

func (m *MemorySnapshotStore) Save(key string, snapshot models.CartSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot %q: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *MemorySnapshotStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
