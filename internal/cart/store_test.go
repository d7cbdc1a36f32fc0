package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/cart"
	"bazaar/internal/models"
)

// stubSource is a fixed catalog snapshot for snapshot joins.
type stubSource struct {
	products []models.Product
}

func (s *stubSource) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

var testCatalog = []models.Product{
	{ID: "a", Name: "ESP32 Dev Board", Price: 100.0},
	{ID: "b", Name: "DHT22 Sensor", Price: 50.0},
	{ID: "c", Name: "Relay Module", Price: 30.0},
}

func newTestStore() *cart.Store {
	return cart.NewStore(&stubSource{products: testCatalog})
}

func TestStore_AddOrIncrement(t *testing.T) {
	store := newTestStore()

	store.AddOrIncrement("a")
	store.AddOrIncrement("b")
	store.AddOrIncrement("a")

	lines := store.Lines()
	require.Len(t, lines, 2)
	// Insertion order preserved, existing line incremented in place.
	assert.Equal(t, models.CartLine{ProductID: "a", Quantity: 2}, lines[0])
	assert.Equal(t, models.CartLine{ProductID: "b", Quantity: 1}, lines[1])
}

func TestStore_InvariantsUnderMutationSequences(t *testing.T) {
	store := newTestStore()

	ops := []func(){
		func() { store.AddOrIncrement("a") },
		func() { store.AddOrIncrement("b") },
		func() { store.Decrement("a") },
		func() { store.AddOrIncrement("a") },
		func() { store.AddOrIncrement("a") },
		func() { store.Remove("b") },
		func() { store.Decrement("b") }, // absent: no-op
		func() { store.Remove("zzz") },  // absent: no-op
		func() { store.AddOrIncrement("c") },
		func() { store.Decrement("c") },
		func() { store.Decrement("c") }, // absent again: no-op
	}

	for _, op := range ops {
		op()
		seen := map[string]bool{}
		for _, line := range store.Lines() {
			assert.Greater(t, line.Quantity, 0, "no stored quantity may be <= 0")
			assert.False(t, seen[line.ProductID], "no duplicate product IDs")
			seen[line.ProductID] = true
		}
	}
}

func TestStore_DecrementUndoesAdds(t *testing.T) {
	store := newTestStore()
	store.AddOrIncrement("b")

	before := store.Lines()

	const n = 4
	for i := 0; i < n; i++ {
		store.AddOrIncrement("a")
	}
	for i := 0; i < n; i++ {
		store.Decrement("a")
	}

	assert.Equal(t, before, store.Lines())
}

func TestStore_DecrementAtOneRemovesLine(t *testing.T) {
	store := newTestStore()
	store.AddOrIncrement("a")

	store.Decrement("a")

	assert.Empty(t, store.Lines())
	assert.Zero(t, store.Len())
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore()
	store.AddOrIncrement("a")
	store.AddOrIncrement("b")
	store.AddOrIncrement("a")

	store.Clear()

	assert.Empty(t, store.Lines())
	assert.Empty(t, store.Snapshot().Items)
}

func TestStore_SnapshotTotal(t *testing.T) {
	store := newTestStore()

	// a (100) once, b (50) once, then a again.
	store.AddOrIncrement("a")
	store.AddOrIncrement("b")
	store.AddOrIncrement("a")

	view := store.Snapshot()
	require.Len(t, view.Items, 2)
	assert.Equal(t, 250.0, view.Total)
	assert.Equal(t, "ESP32 Dev Board", view.Items[0].Product.Name)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestStore_SnapshotDropsLinesMissingFromCatalog(t *testing.T) {
	source := &stubSource{products: testCatalog}
	store := cart.NewStore(source)

	store.AddOrIncrement("a")
	store.AddOrIncrement("b")

	// Catalog refresh drops product "a".
	source.products = []models.Product{{ID: "b", Name: "DHT22 Sensor", Price: 50.0}}

	view := store.Snapshot()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "b", view.Items[0].Product.ID)
	assert.Equal(t, 50.0, view.Total)

	// The underlying line survives until explicitly removed.
	assert.Len(t, store.Lines(), 2)

	// And reappears once the catalog has it again.
	source.products = testCatalog
	assert.Len(t, store.Snapshot().Items, 2)
}

func TestStore_ObserversSeeEveryMutation(t *testing.T) {
	store := newTestStore()

	var published [][]models.CartLine
	unsubscribe := store.Subscribe(func(lines []models.CartLine) {
		published = append(published, lines)
	})

	store.AddOrIncrement("a")
	store.AddOrIncrement("a")
	store.Decrement("a")
	store.Clear()

	require.Len(t, published, 4)
	assert.Equal(t, 1, published[0][0].Quantity)
	assert.Equal(t, 2, published[1][0].Quantity)
	assert.Equal(t, 1, published[2][0].Quantity)
	assert.Empty(t, published[3])

	// Published snapshots are copies: mutating one must not affect the store.
	published[2][0].Quantity = 99
	assert.Empty(t, store.Lines())

	unsubscribe()
	store.AddOrIncrement("b")
	assert.Len(t, published, 4)
}

func TestStore_NoPublishForNoOpMutations(t *testing.T) {
	store := newTestStore()
	store.AddOrIncrement("a")

	calls := 0
	defer store.Subscribe(func([]models.CartLine) { calls++ })()

	store.Decrement("missing")
	store.Remove("missing")

	assert.Zero(t, calls)
}
