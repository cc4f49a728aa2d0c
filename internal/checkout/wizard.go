package checkout

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/orders"
)

// Step represents a stage of the checkout wizard
type Step string

const (
	StepSummary Step = "SUMMARY"
	StepDetails Step = "DETAILS"
	StepConfirm Step = "CONFIRM"
)

// CanTransitionTo checks if a step transition is valid
func (s Step) CanTransitionTo(next Step) bool {
	switch s {
	case StepSummary:
		return next == StepDetails
	case StepDetails:
		return next == StepSummary || next == StepConfirm
	case StepConfirm:
		return false // Terminal for the wizard's lifetime
	default:
		return false
	}
}

// genericSubmitError stands in when the server gives no usable message
const genericSubmitError = "Failed to place order. Please try again."

var (
	// ErrSubmitInProgress is returned while a submission is in flight
	ErrSubmitInProgress = fmt.Errorf("submission already in progress")
	// ErrOutOfStock is returned when the selected variant has no stock
	ErrOutOfStock = fmt.Errorf("selected size is out of stock")
	// ErrClosed is returned for operations on a closed wizard
	ErrClosed = fmt.Errorf("checkout is closed")
)

// Wizard drives a single checkout session: summary → details → confirm.
// The product pricing snapshot and selected size are captured when the
// wizard opens and never re-fetched, so a mid-checkout price change is
// never silently applied (and a stale price is knowingly submitted).
type Wizard struct {
	mu          sync.Mutex
	step        Step
	draft       Draft
	product     domain.ProductSnapshot
	size        domain.ProductSize
	countryCode string
	client      *orders.Client
	logger      *zap.Logger

	submitting  bool
	closed      bool
	fieldErrors map[string]string
	submitError string
}

// NewWizard opens a checkout session for the given product snapshot and
// selected size.
func NewWizard(
	product domain.ProductSnapshot,
	size domain.ProductSize,
	client *orders.Client,
	cfg config.CheckoutConfig,
	logger *zap.Logger,
) *Wizard {
	return &Wizard{
		step:        StepSummary,
		product:     product,
		size:        size,
		countryCode: cfg.CountryCode,
		client:      client,
		logger:      logger,
	}
}

// Step returns the current wizard step
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns the current order draft
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDraft replaces the order draft with the latest form state
func (w *Wizard) SetDraft(d Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = d
}

// CanContinue reports whether the continue action on the summary step
// is enabled. A variant with no stock keeps the wizard on summary.
func (w *Wizard) CanContinue() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == StepSummary && w.size.Stock > 0
}

// Continue advances summary → details
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.step.CanTransitionTo(StepDetails) {
		return fmt.Errorf("cannot continue from %s", w.step)
	}
	if w.size.Stock <= 0 {
		return ErrOutOfStock
	}
	w.step = StepDetails
	return nil
}

// Back returns details → summary. The draft is kept for the session.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.step.CanTransitionTo(StepSummary) {
		return fmt.Errorf("cannot go back from %s", w.step)
	}
	w.step = StepSummary
	return nil
}

// Total returns the price charged for the selected product: the offer
// price when present, else the normal price, never negative.
func (w *Wizard) Total() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	price := w.product.NormalPrice
	if w.product.OfferPrice != nil {
		price = *w.product.OfferPrice
	}
	if price < 0 {
		return 0
	}
	return price
}

// FieldErrors returns the per-field messages from the last failed
// validation, or nil.
func (w *Wizard) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fieldErrors
}

// SubmitError returns the message from the last failed submission
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitError
}

// Submitting reports whether a submission is in flight
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Close marks the wizard as gone. There is no request cancellation: an
// in-flight submission keeps running, but its eventual result is
// discarded instead of mutating a closed wizard.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// Submit validates the draft and, if every field passes, posts the
// order. Validation checks all fields together and reports every
// failure at once; nothing reaches the network on a validation error.
// On a server rejection or transport failure the wizard stays on the
// details step so the user can correct and resubmit; nothing is
// retried automatically.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.step != StepDetails {
		step := w.step
		w.mu.Unlock()
		return fmt.Errorf("cannot submit from %s", step)
	}
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}

	normalized, fieldErrs := ValidateDraft(w.draft, w.countryCode)
	if len(fieldErrs) > 0 {
		w.fieldErrors = fieldErrs
		w.mu.Unlock()
		return fieldErrs
	}
	w.fieldErrors = nil
	w.submitError = ""
	w.submitting = true

	payload := orders.CreateOrderRequest{
		FullName:    normalized.FullName,
		Email:       normalized.Email,
		Address:     normalized.Address,
		PhoneNumber: normalized.PhoneNumber,
		District:    normalized.District,
		Product:     w.product,
		Size:        w.size.Name,
		Notes:       normalized.Notes,
	}
	w.mu.Unlock()

	// Cleared whatever the outcome, so the form is never left locked
	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	resp, err := w.client.CreateOrder(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		// Late response for a wizard the user already left
		return nil
	}

	if err != nil {
		w.logger.Error("Order submission failed", zap.Error(err))
		w.submitError = genericSubmitError
		return err
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = genericSubmitError
		}
		w.submitError = msg
		return fmt.Errorf("order rejected: %s", msg)
	}

	w.step = StepConfirm
	return nil
}
