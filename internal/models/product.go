package models

// Product is one purchasable item from the remote catalog. Products are
// immutable once fetched; a catalog refresh replaces the whole list.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}
