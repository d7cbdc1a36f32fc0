package cart

import (
	"sync"

	"bazaar/internal/models"
)

// ProductSource supplies the catalog snapshot used to join cart lines with
// product data. Implemented by catalog.Cache.
type ProductSource interface {
	Products() []models.Product
}

// Observer receives a copy of the cart lines after every mutation.
type Observer func(lines []models.CartLine)

// Store is the authoritative, observable mapping from product ID to selected
// quantity. Lines are kept in insertion order. Every mutation is one atomic
// read-modify-publish transition: observers never see a half-applied update,
// a quantity of zero or less, or two lines for the same product.
type Store struct {
	source ProductSource

	mu        sync.Mutex
	lines     []models.CartLine
	observers map[int]Observer
	nextObsID int
}

// NewStore creates an empty cart backed by the given product source.
func NewStore(source ProductSource) *Store {
	return &Store{
		source:    source,
		observers: make(map[int]Observer),
	}
}

// AddOrIncrement inserts a line with quantity 1 for a product not yet in the
// cart, appending it at the end, or increments the existing line by 1. The
// order of existing lines is preserved either way.
func (s *Store) AddOrIncrement(productID string) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, models.CartLine{ProductID: productID, Quantity: 1})
	}
	snapshot, observers := s.publishStateLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
}

// Decrement lowers the line's quantity by 1, removing the line entirely when
// the quantity was 1. An absent product ID is a no-op.
func (s *Store) Decrement(productID string) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
		} else {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		changed = true
		break
	}
	var snapshot []models.CartLine
	var observers []Observer
	if changed {
		snapshot, observers = s.publishStateLocked()
	}
	s.mu.Unlock()

	notify(observers, snapshot)
}

// Remove drops the line for productID if present; otherwise it is a no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
			break
		}
	}
	var snapshot []models.CartLine
	var observers []Observer
	if changed {
		snapshot, observers = s.publishStateLocked()
	}
	s.mu.Unlock()

	notify(observers, snapshot)
}

// Clear resets the cart to the empty collection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	snapshot, observers := s.publishStateLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
}

// Len returns the number of distinct lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Lines returns a copy of the stored lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLinesLocked()
}

// Snapshot joins the stored lines with the current catalog snapshot and
// computes the total. A line whose product is no longer in the catalog is
// dropped from the view but kept in the store, so a transient catalog gap
// never silently loses purchase intent.
func (s *Store) Snapshot() models.CartView {
	products := s.source.Products()
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.CartView{Items: make([]models.CartItem, 0, len(s.lines))}
	for _, line := range s.lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, models.CartItem{Product: product, Quantity: line.Quantity})
		view.Total += product.Price * float64(line.Quantity)
	}
	return view
}

// Subscribe registers an observer and returns its unsubscribe function.
// Observers are invoked after the mutation is fully applied, outside the
// store lock, with a copy they are free to keep.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) copyLinesLocked() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// publishStateLocked captures the post-mutation snapshot and the observer set
// while the lock is still held, so the published state is exactly the state
// the mutation produced.
func (s *Store) publishStateLocked() ([]models.CartLine, []Observer) {
	if len(s.observers) == 0 {
		return nil, nil
	}
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	return s.copyLinesLocked(), observers
}

func notify(observers []Observer, snapshot []models.CartLine) {
	for _, obs := range observers {
		obs(snapshot)
	}
}
