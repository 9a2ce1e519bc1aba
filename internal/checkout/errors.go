package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBasket         = errors.New("basket is empty, nothing to check out")
	IllegalTransitionError = errors.New("illegal transition of checkout status")

	// ErrNotReady: no gateway client secret yet; initialization has not
	// completed (or failed).
	ErrNotReady = errors.New("payment system not ready")

	ErrNoDeliveryMethod = errors.New("no delivery method selected")

	// ErrStalePricing blocks submission under StrictRepricing after a failed
	// payment-intent refresh.
	ErrStalePricing = errors.New("delivery pricing is stale, reselect the delivery method")

	// ErrPaymentIncomplete: the gateway returned neither success nor an
	// error subtype we recognize (e.g. requires_action leaked through).
	ErrPaymentIncomplete = errors.New("payment was not completed")
)

// PartialFailureError reports the one divergent outcome: the gateway captured
// the payment but order creation failed. Resubmitting could double-charge, so
// this must be surfaced distinctly, never retried by simple resubmit.
type PartialFailureError struct {
	PaymentIntentID string
	Err             error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("payment succeeded but order was not recorded (intent %s): %v", e.PaymentIntentID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
