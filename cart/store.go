package cart

import (
	"sync"

	"qube-server/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotNamespace prefixes every persisted cart key, matching the fixed
// storage namespace the web client uses.
const SnapshotNamespace = "qube-cart-storage"

// SnapshotKey returns the durable storage key for a cart.
func SnapshotKey(cartKey string) string {
	return SnapshotNamespace + ":" + cartKey
}

// Store owns one cart: an ordered collection of line items (at most one per
// product) plus the drawer visibility flag. All quantity math lives here;
// callers never normalize quantities themselves.
//
// Every successful mutation is followed by a best-effort snapshot write. A
// failed write is logged and otherwise ignored; the in-memory mutation always
// takes effect. Two Stores hydrated from the same key race last-writer-wins,
// the same hazard as two browser tabs sharing local storage.
type Store struct {
	mu        sync.Mutex
	key       string
	items     []models.CartLineItem
	isOpen    bool
	snapshots SnapshotStore
	logger    *zap.Logger

	// roundOnIncreaseOnly makes UpdateQuantity round up to the increment only
	// when the quantity grows. Decreasing to any value at or above the minimum
	// is accepted exactly as requested, so a user can step down toward the
	// minimum one unit at a time without being forced back up.
	roundOnIncreaseOnly bool
}

// NewStore builds a store for the given cart key and hydrates it from the
// snapshot store. A missing snapshot yields an empty cart; a failed load is
// logged and also yields an empty cart.
func NewStore(key string, snapshots SnapshotStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		key:                 SnapshotKey(key),
		snapshots:           snapshots,
		logger:              logger,
		roundOnIncreaseOnly: true,
	}
	snapshot, err := snapshots.Load(s.key)
	if err != nil {
		logger.Warn("failed to load cart snapshot, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return s
	}
	if snapshot != nil {
		s.items = snapshot.Items
		s.isOpen = snapshot.IsOpen
	}
	return s
}

// AddItem puts a product in the cart. The requested quantity is normalized
// under the product's policy; when the product is already present the
// normalized request is merged into the existing line item and the sum is
// normalized again. The embedded product record is refreshed on merge so the
// line item carries the current price. Returns whether any coercion occurred,
// of the requested quantity or of the merged sum.
func (s *Store) AddItem(product models.Product, requested int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy := PolicyFor(product)
	normalized := policy.Normalize(requested)
	adjusted := normalized != requested

	if i := s.indexOf(product.ID); i >= 0 {
		sum := s.items[i].Quantity + normalized
		merged := policy.Normalize(sum)
		if merged != sum {
			adjusted = true
		}
		s.items[i].Product = product
		s.items[i].Quantity = merged
	} else {
		s.items = append(s.items, models.CartLineItem{Product: product, Quantity: normalized})
	}
	s.persist()
	return adjusted
}

// RemoveItem deletes the line item for the product. Removing an absent
// product is a no-op, not an error.
func (s *Store) RemoveItem(productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist()
}

// UpdateQuantity sets a line item's quantity. A quantity of zero or less
// removes the item. A quantity below the product's minimum is clamped to the
// minimum. Above the minimum, the value is rounded up to the increment only
// when it increases the current quantity (roundOnIncreaseOnly); decreases are
// applied exactly. Updating an absent product is a no-op. Returns whether the
// requested quantity was adjusted.
func (s *Store) UpdateQuantity(productID uuid.UUID, newQuantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	if newQuantity <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persist()
		return false
	}

	policy := PolicyFor(s.items[i].Product)
	applied := newQuantity
	switch {
	case newQuantity < policy.Minimum:
		applied = policy.Minimum
	case newQuantity > s.items[i].Quantity || !s.roundOnIncreaseOnly:
		applied = policy.Normalize(newQuantity)
	}
	s.items[i].Quantity = applied
	s.persist()
	return applied != newQuantity
}

// ClearCart empties the line items. The visibility flag is untouched.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Discard empties the cart and removes its persisted snapshot, used once a
// checkout has consumed the cart. Unlike ClearCart it does not write an empty
// snapshot back; the next hydration of this key starts completely fresh, with
// the drawer closed.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.isOpen = false
	if err := s.snapshots.Delete(s.key); err != nil {
		s.logger.Warn("failed to delete cart snapshot",
			zap.String("key", s.key), zap.Error(err))
	}
}

// OpenCart marks the cart drawer visible.
func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
	s.persist()
}

// CloseCart marks the cart drawer hidden.
func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
	s.persist()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsOpen reports the drawer visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// TotalItems returns the summed quantity across all line items.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the summed price of the cart, using each line item's
// current product price.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ValidateMinimumQuantities scans every line item and corrects, in place, any
// quantity violating its product's policy. Returns true when the cart was
// already fully valid (no change was made). Checkout must not proceed on a
// false return until the user reconfirms the corrected cart.
func (s *Store) ValidateMinimumQuantities() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := true
	for i := range s.items {
		policy := PolicyFor(s.items[i].Product)
		if normalized := policy.Normalize(s.items[i].Quantity); normalized != s.items[i].Quantity {
			s.items[i].Quantity = normalized
			valid = false
		}
	}
	if !valid {
		s.persist()
	}
	return valid
}

// Snapshot returns the persistable view of the cart.
func (s *Store) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() models.CartSnapshot {
	items := make([]models.CartLineItem, len(s.items))
	copy(items, s.items)
	return models.CartSnapshot{Items: items, IsOpen: s.isOpen}
}

// persist writes the current snapshot, best effort. Callers hold s.mu.
func (s *Store) persist() {
	if err := s.snapshots.Save(s.key, s.snapshot()); err != nil {
		s.logger.Warn("failed to persist cart snapshot",
			zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) indexOf(productID uuid.UUID) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
