package cart

import (
	"errors"
	"testing"

	"qube-server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testProduct(name string, price float64, minimum, increment int) models.Product {
	return models.Product{
		ID:               uuid.New(),
		Name:             name,
		Price:            price,
		Category:         "supplements",
		InStock:          true,
		MinOrderQuantity: minimum,
		OrderIncrement:   increment,
	}
}

func newTestStore(t *testing.T) (*Store, *MemorySnapshotStore) {
	t.Helper()
	snapshots := NewMemorySnapshotStore()
	return NewStore("test-cart", snapshots, zap.NewNop()), snapshots
}

func TestAddItemNormalizesQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)

	adjusted := store.AddItem(p, 25)
	assert.True(t, adjusted)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 30, items[0].Quantity)
	assert.Equal(t, 30, store.TotalItems())
	assert.Equal(t, 30*800.0, store.TotalPrice())
}

func TestAddItemMergesDuplicates(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Omega 3", 600, 20, 10)

	assert.False(t, store.AddItem(p, 20))
	assert.True(t, store.AddItem(p, 5)) // 5 normalizes to 20, merged sum 40

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].Quantity)
}

func TestAddItemReportsMergeRounding(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)
	store.AddItem(p, 40)

	// Decrement leaves an increment-misaligned quantity in the cart
	store.UpdateQuantity(p.ID, 35)

	// The request itself needs no coercion, but the merged sum 55 rounds to
	// 60; the caller must still be told an adjustment happened.
	adjusted := store.AddItem(p, 20)
	assert.True(t, adjusted)
	assert.Equal(t, 60, store.Items()[0].Quantity)
}

func TestAddItemUsesDefaultsForUnconfiguredProduct(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Aloe Vera Gel", 299, 0, 0)

	store.AddItem(p, 1)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, DefaultMinimumOrderQuantity, items[0].Quantity)
}

func TestAddItemRefreshesProductPrice(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Vitamin C Serum", 1299, 20, 10)

	store.AddItem(p, 20)

	p.Price = 1499
	store.AddItem(p, 10) // merge refreshes the embedded product

	assert.Equal(t, 40*1499.0, store.TotalPrice())
}

func TestUpdateQuantityRoundsOnIncreaseOnly(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)
	store.AddItem(p, 40)

	// Decreasing to a value at or above the minimum is applied exactly
	adjusted := store.UpdateQuantity(p.ID, 35)
	assert.False(t, adjusted)
	assert.Equal(t, 35, store.Items()[0].Quantity)

	// Increasing rounds up to the increment
	adjusted = store.UpdateQuantity(p.ID, 36)
	assert.True(t, adjusted)
	assert.Equal(t, 40, store.Items()[0].Quantity)
}

func TestUpdateQuantityClampsBelowMinimum(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)
	store.AddItem(p, 40)

	adjusted := store.UpdateQuantity(p.ID, 10)
	assert.True(t, adjusted)
	assert.Equal(t, 20, store.Items()[0].Quantity)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)
	q := testProduct("Omega 3", 600, 20, 10)
	store.AddItem(p, 20)
	store.AddItem(q, 20)

	store.UpdateQuantity(p.ID, 0)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, q.ID, items[0].Product.ID)

	store.UpdateQuantity(q.ID, -5)
	assert.Empty(t, store.Items())
}

func TestUpdateQuantityAbsentProductIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.UpdateQuantity(uuid.New(), 30))
	assert.Empty(t, store.Items())
}

func TestRemoveItem(t *testing.T) {
	store, _ := newTestStore(t)
	p := testProduct("Biotine", 800, 20, 10)
	store.AddItem(p, 20)

	// Removing an absent product is a no-op, not an error
	store.RemoveItem(uuid.New())
	assert.Len(t, store.Items(), 1)

	store.RemoveItem(p.ID)
	assert.Empty(t, store.Items())
}

func TestClearCartLeavesVisibilityUntouched(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddItem(testProduct("Biotine", 800, 20, 10), 20)
	store.OpenCart()

	store.ClearCart()
	assert.Empty(t, store.Items())
	assert.True(t, store.IsOpen())

	store.CloseCart()
	assert.False(t, store.IsOpen())
}

func TestEmptyCartTotals(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Equal(t, 0, store.TotalItems())
	assert.Equal(t, 0.0, store.TotalPrice())

	store.AddItem(testProduct("Biotine", 800, 20, 10), 20)
	store.ClearCart()
	assert.Equal(t, 0, store.TotalItems())
	assert.Equal(t, 0.0, store.TotalPrice())
}

func TestSnapshotRoundTrip(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	first := NewStore("roundtrip", snapshots, zap.NewNop())

	p := testProduct("Biotine", 800, 20, 10)
	q := testProduct("Cetaphil Cleanser", 499, 50, 25)
	first.AddItem(p, 25)
	first.AddItem(q, 50)
	first.OpenCart()

	second := NewStore("roundtrip", snapshots, zap.NewNop())
	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, first.IsOpen(), second.IsOpen())
	assert.Equal(t, first.TotalItems(), second.TotalItems())
	assert.Equal(t, first.TotalPrice(), second.TotalPrice())
}

func TestValidateMinimumQuantities(t *testing.T) {
	snapshots := NewMemorySnapshotStore()

	// Seed a snapshot that violates both the minimum and the increment rule,
	// as a stale client could have written.
	p := testProduct("Biotine", 800, 20, 10)
	q := testProduct("Omega 3", 600, 20, 10)
	err := snapshots.Save(SnapshotKey("stale"), models.CartSnapshot{
		Items: []models.CartLineItem{
			{Product: p, Quantity: 15},
			{Product: q, Quantity: 33},
		},
	})
	require.NoError(t, err)

	store := NewStore("stale", snapshots, zap.NewNop())
	assert.False(t, store.ValidateMinimumQuantities())

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 20, items[0].Quantity)
	assert.Equal(t, 40, items[1].Quantity)

	// Idempotent and side-effect-free once the cart is valid
	assert.True(t, store.ValidateMinimumQuantities())
	assert.Equal(t, items, store.Items())

	// The correction was persisted
	rehydrated := NewStore("stale", snapshots, zap.NewNop())
	assert.Equal(t, items, rehydrated.Items())
}

func TestDiscardRemovesSnapshot(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	store := NewStore("consumed", snapshots, zap.NewNop())
	store.AddItem(testProduct("Biotine", 800, 20, 10), 20)
	store.OpenCart()

	store.Discard()
	assert.Empty(t, store.Items())
	assert.False(t, store.IsOpen())

	// The snapshot row is gone, not overwritten with an empty cart
	snapshot, err := snapshots.Load(SnapshotKey("consumed"))
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	rehydrated := NewStore("consumed", snapshots, zap.NewNop())
	assert.Empty(t, rehydrated.Items())
	assert.False(t, rehydrated.IsOpen())
}

type failingSnapshotStore struct{}

func (failingSnapshotStore) Load(string) (*models.CartSnapshot, error) { return nil, nil }
func (failingSnapshotStore) Save(string, models.CartSnapshot) error {
	return errors.New("storage quota exceeded")
}
func (failingSnapshotStore) Delete(string) error { return nil }

func TestPersistFailureDoesNotBlockMutation(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewStore("doomed", failingSnapshotStore{}, zap.New(core))

	store.AddItem(testProduct("Biotine", 800, 20, 10), 20)

	// The in-memory mutation took effect and the failure was logged
	assert.Equal(t, 20, store.TotalItems())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to persist cart snapshot", logs.All()[0].Message)
}
