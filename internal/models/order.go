package models

// ShippingDetails is what the checkout form collects. It is transient: held
// for the duration of the checkout flow and discarded after submission or
// cancellation. Name, phone and address must be non-blank; email, when
// present, must be well-formed.
type ShippingDetails struct {
	Name     string `json:"name" validate:"notblank"`
	Phone    string `json:"phone" validate:"notblank"`
	Address  string `json:"address" validate:"notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	Whatsapp string `json:"whatsapp" validate:"omitempty"`
}

// OrderItem is a snapshot of one cart line at submission time. It carries the
// product name and price as they were when the order was built, not a
// reference back into the catalog.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest is the finalized purchase document sent to the order service.
// Once constructed it is immutable and sent exactly once; a retry goes
// through a new OrderRequest with a fresh OrderID.
type OrderRequest struct {
	OrderID       string      `json:"orderId"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Email         string      `json:"email"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
}
