package checkout

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"bazaar/internal/models"
)

// State is the orchestrator's position in the checkout sequence.
type State int

const (
	// Idle means no checkout is in progress.
	Idle State = iota
	// CollectingDetails means the shipping-details form is open.
	CollectingDetails
	// Submitting means an order submission is in flight. It is not
	// cancellable; the orchestrator waits for completion or failure.
	Submitting
	// HandingOffPayment means the order was accepted and the payment link is
	// being dispatched.
	HandingOffPayment
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CollectingDetails:
		return "collecting-details"
	case Submitting:
		return "submitting"
	case HandingOffPayment:
		return "handing-off-payment"
	default:
		return "unknown"
	}
}

// Notifier delivers user-visible messages. All network-originating errors end
// up here instead of propagating as faults.
type Notifier interface {
	Notify(message string)
}

// Recorder keeps a local record of successfully submitted orders.
// Implemented by journal.Journal; may be nil when no journal is configured.
type Recorder interface {
	Record(order models.OrderRequest) error
}

// CartStore is the slice of the cart API the orchestrator needs.
type CartStore interface {
	Len() int
	Clear()
	Snapshot() models.CartView
}

// Payee identifies the UPI receiving account used for the payment handoff.
type Payee struct {
	ID   string
	Name string
	Note string
}

// Orchestrator sequences shipping-detail collection, order submission and the
// payment handoff as one transaction from the user's perspective. On failure
// the cart is preserved so the same contents can be resubmitted under a new
// order ID.
type Orchestrator struct {
	cart      CartStore
	submitter Submitter
	launcher  Launcher
	notifier  Notifier
	recorder  Recorder
	payee     Payee
	validate  *validator.Validate

	mu    sync.Mutex
	state State
}

// PaymentMethod tags every order produced by this engine. The original
// application only supports the UPI handoff.
const PaymentMethod = "UPI"

// NewOrchestrator wires the orchestrator. recorder may be nil; launcher and
// notifier must not be.
func NewOrchestrator(cart CartStore, submitter Submitter, launcher Launcher, notifier Notifier, recorder Recorder, payee Payee) *Orchestrator {
	return &Orchestrator{
		cart:      cart,
		submitter: submitter,
		launcher:  launcher,
		notifier:  notifier,
		recorder:  recorder,
		payee:     payee,
		validate:  newValidator(),
	}
}

// newValidator configures the shared validator with the notblank rule:
// required-but-whitespace shipping fields must not pass.
func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// State returns the current checkout state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Begin opens the shipping-details form. It refuses to start with an empty
// cart, and refuses when a checkout is already underway.
func (o *Orchestrator) Begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != Idle {
		return ErrBusy
	}
	if o.cart.Len() == 0 {
		return ErrEmptyCart
	}
	o.state = CollectingDetails
	return nil
}

// Cancel discards the shipping details and returns to Idle with no side
// effects. An in-flight submission cannot be cancelled; Cancel returns ErrBusy
// until it completes or fails.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == Submitting {
		return ErrBusy
	}
	o.state = Idle
	return nil
}

// Confirm validates the shipping details and, if they pass, runs the
// submission and payment handoff. Validation failure keeps the form open and
// never reaches the network. Submission failure returns to Idle with the cart
// intact and exactly one user-visible notification. On success the cart is
// cleared, the order journaled, and the payment link dispatched; a failed
// handoff is reported but the order stands.
func (o *Orchestrator) Confirm(ctx context.Context, details models.ShippingDetails) error {
	o.mu.Lock()
	if o.state != CollectingDetails {
		o.mu.Unlock()
		return ErrBusy
	}

	if err := o.validateDetails(details); err != nil {
		// Precondition, not a runtime failure: stay in CollectingDetails.
		o.mu.Unlock()
		return err
	}

	view := o.cart.Snapshot()
	if len(view.Items) == 0 {
		o.state = Idle
		o.mu.Unlock()
		return ErrEmptyCart
	}

	o.state = Submitting
	o.mu.Unlock()

	order := NewOrderRequest(view, details, PaymentMethod)

	if err := o.submitter.Submit(ctx, order); err != nil {
		o.mu.Lock()
		o.state = Idle
		o.mu.Unlock()
		o.notifier.Notify("Failed to place order: " + err.Error())
		return err
	}

	o.mu.Lock()
	o.state = HandingOffPayment
	o.mu.Unlock()

	o.cart.Clear()
	o.notifier.Notify("Order placed successfully")

	if o.recorder != nil {
		if err := o.recorder.Record(order); err != nil {
			log.Printf("failed to journal order %s: %v", order.OrderID, err)
		}
	}

	uri := UPILink(o.payee.ID, o.payee.Name, o.payee.Note, order.TotalAmount)
	var handoffErr error
	if err := o.launcher.Open(uri); err != nil {
		// The order is already recorded server-side; nothing is rolled back.
		handoffErr = &HandoffError{URI: uri, Err: err}
		o.notifier.Notify("No payment app could be opened; order " + order.OrderID + " is already placed")
	}

	o.mu.Lock()
	o.state = Idle
	o.mu.Unlock()
	return handoffErr
}

// validateDetails maps validator output onto a *ValidationError listing the
// offending fields.
func (o *Orchestrator) validateDetails(details models.ShippingDetails) error {
	err := o.validate.Struct(details)
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, strings.ToLower(fe.Field()))
		}
	} else {
		verr.Fields = append(verr.Fields, err.Error())
	}
	return verr
}
