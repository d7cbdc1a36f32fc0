package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/catalog"
)

func TestHTTPFetcher_MapsWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id": "663f1a2b", "name": "ESP32 Dev Board", "price": 450, "imageUrl": "http://img/esp32.jpg"},
			{"_id": "663f1a2c", "name": "DHT22 Sensor", "price": 280, "imageUrl": "http://img/dht22.jpg"}
		]`))
	}))
	defer server.Close()

	fetcher := catalog.NewHTTPFetcher(server.URL, nil)
	products, err := fetcher.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "663f1a2b", products[0].ID, "wire _id maps to Product.ID")
	assert.Equal(t, "ESP32 Dev Board", products[0].Name)
	assert.Equal(t, 450.0, products[0].Price)
	assert.Equal(t, "http://img/esp32.jpg", products[0].ImageURL)
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := catalog.NewHTTPFetcher(server.URL, nil)
	_, err := fetcher.FetchProducts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	fetcher := catalog.NewHTTPFetcher(server.URL, nil)
	_, err := fetcher.FetchProducts(context.Background())

	require.Error(t, err)
}

func TestHTTPFetcher_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	fetcher := catalog.NewHTTPFetcher(server.URL, nil)
	_, err := fetcher.FetchProducts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
