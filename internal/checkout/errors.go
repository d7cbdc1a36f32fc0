package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCart is returned when checkout is initiated with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrBusy is returned when a checkout operation is attempted while another
// one is in a state that forbids it, e.g. a submission already in flight.
var ErrBusy = errors.New("checkout already in progress")

// ValidationError reports shipping details that failed validation. It blocks
// the transition to submission; nothing reaches the network.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid shipping details: " + strings.Join(e.Fields, ", ")
}

// SubmissionError reports a failed order submission. The cart is preserved so
// the user may retry, which produces a new order ID.
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order submission failed: %s: %v", e.Reason, e.Err)
	}
	return "order submission failed: " + e.Reason
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// HandoffError reports that no payment application could handle the payment
// link. The order has already been recorded server-side at this point; this
// is an accepted inconsistency window, not rolled back.
type HandoffError struct {
	URI string
	Err error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("payment handoff unavailable: %v", e.Err)
}

func (e *HandoffError) Unwrap() error { return e.Err }
