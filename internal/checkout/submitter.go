package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bazaar/internal/models"
)

// Submitter delivers one finalized OrderRequest to the order service.
// At-most-once: implementations never retry on their own. A duplicate
// submission only happens when the user re-triggers checkout, which builds a
// new OrderRequest with a fresh order ID.
type Submitter interface {
	Submit(ctx context.Context, order models.OrderRequest) error
}

// NewOrderRequest builds the immutable order document from a cart view and
// shipping details: fresh order ID, item snapshots copied from the view, and
// the total computed here rather than taken from any cached value.
func NewOrderRequest(view models.CartView, details models.ShippingDetails, paymentMethod string) models.OrderRequest {
	items := make([]models.OrderItem, 0, len(view.Items))
	var total float64
	for _, item := range view.Items {
		items = append(items, models.OrderItem{
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			Quantity: item.Quantity,
		})
		total += item.Product.Price * float64(item.Quantity)
	}

	return models.OrderRequest{
		OrderID:       uuid.New().String(),
		Name:          details.Name,
		Phone:         details.Phone,
		Address:       details.Address,
		Email:         details.Email,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		Items:         items,
	}
}

// HTTPSubmitter posts orders to POST {baseURL}/api/orders. When authToken is
// non-empty it rides along as a bearer credential for order attribution; the
// engine never inspects it.
type HTTPSubmitter struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewHTTPSubmitter creates an HTTPSubmitter. A nil client falls back to one
// with a sane default timeout.
func NewHTTPSubmitter(baseURL, authToken string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSubmitter{baseURL: baseURL, authToken: authToken, client: client}
}

// Submit serializes the order and performs exactly one POST. Any transport
// error, timeout or non-2xx status is reported as a *SubmissionError with the
// upstream message surfaced.
func (s *HTTPSubmitter) Submit(ctx context.Context, order models.OrderRequest) error {
	body, err := json.Marshal(order)
	if err != nil {
		return &SubmissionError{Reason: "failed to encode order", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{Reason: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &SubmissionError{Reason: "order request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &SubmissionError{
			Reason: fmt.Sprintf("order service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg)),
		}
	}
	return nil
}
