package catalog

import (
	"context"
	"strings"
	"sync"

	"bazaar/internal/models"
)

// FetchError reports a failed catalog refresh. The previous cached list is
// retained, so the caller may keep showing it and retry later.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "catalog refresh failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Cache holds the last successfully fetched product list. Refresh replaces
// the list wholesale; there are no partial updates. Reads always return the
// last good snapshot, which may be empty before the first successful fetch.
type Cache struct {
	fetcher Fetcher

	mu        sync.Mutex
	products  []models.Product
	nextSeq   uint64
	installed uint64
}

// NewCache creates an empty Cache backed by the given fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh fetches the full product list and, on success, atomically replaces
// the cached list. On failure the previous cache is left untouched and a
// *FetchError is returned. Overlapping refreshes are last-write-wins: a slow
// fetch that started before a newer one completed never overwrites the newer
// list.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	products, err := c.fetcher.FetchProducts(ctx)
	if err != nil {
		return &FetchError{Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq > c.installed {
		c.products = products
		c.installed = seq
	}
	return nil
}

// Products returns a copy of the last good snapshot.
func (c *Cache) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Filter returns the products whose name contains query, case-insensitively.
// It is a pure projection over the snapshot and never touches the cache; an
// empty query returns the whole snapshot.
func (c *Cache) Filter(query string) []models.Product {
	products := c.Products()
	if query == "" {
		return products
	}

	q := strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
