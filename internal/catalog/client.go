package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bazaar/internal/models"
)

// Fetcher retrieves the full product list from the catalog service.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// wireProduct is the catalog service's JSON shape. The service exposes the
// Mongo-style "_id" field; it maps to the internal Product.ID.
type wireProduct struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// HTTPFetcher fetches products over HTTP from GET {baseURL}/api/products.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher against the given base URL.
// A nil client falls back to one with a sane default timeout.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPFetcher{baseURL: baseURL, client: client}
}

// FetchProducts performs one GET and decodes the whole list.
func (f *HTTPFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var wire []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	products := make([]models.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, models.Product{
			ID:       w.ID,
			Name:     w.Name,
			Price:    w.Price,
			ImageURL: w.ImageURL,
		})
	}
	return products, nil
}
