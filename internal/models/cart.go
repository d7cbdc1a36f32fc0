package models

// CartLine is one product-id/quantity pair in the cart. Quantity is always
// positive: a line whose quantity would reach zero is removed, never stored.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItem is a cart line joined with its catalog product, for display.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartView is a point-in-time read of the cart joined against the catalog
// snapshot. Total is computed at snapshot time, never cached.
type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
