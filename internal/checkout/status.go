package checkout

type Status string

const (
	StatusIdle             Status = "IDLE"
	StatusInitializing     Status = "INITIALIZING"
	StatusReady            Status = "READY"
	StatusDeliverySelected Status = "DELIVERY_SELECTED"
	StatusSubmitting       Status = "SUBMITTING"
	StatusPaymentConfirmed Status = "PAYMENT_CONFIRMED"
	StatusOrderCreating    Status = "ORDER_CREATING"
	StatusCompleted        Status = "COMPLETED"

	// StatusProcessing: the gateway accepted the payment asynchronously. The
	// user is told to expect an email; no order is created in this flow.
	StatusProcessing Status = "PROCESSING"

	// StatusFailed allows retry: initialization may be re-run as a whole and
	// submission re-validated, reusing the existing client secret.
	StatusFailed Status = "FAILED"

	// StatusSucceededButUnrecorded: payment was captured but order creation
	// failed. Never retried automatically; resubmitting could double-charge.
	StatusSucceededButUnrecorded Status = "SUCCEEDED_BUT_UNRECORDED"
)

var transitions = map[Status][]Status{
	StatusIdle:             {StatusInitializing},
	StatusInitializing:     {StatusReady, StatusFailed},
	StatusReady:            {StatusDeliverySelected, StatusSubmitting, StatusFailed},
	StatusDeliverySelected: {StatusDeliverySelected, StatusSubmitting, StatusFailed},
	StatusSubmitting:       {StatusPaymentConfirmed, StatusProcessing, StatusFailed},
	StatusPaymentConfirmed: {StatusOrderCreating},
	StatusOrderCreating:    {StatusCompleted, StatusSucceededButUnrecorded},
	StatusFailed:           {StatusInitializing, StatusDeliverySelected, StatusSubmitting},
}

// CanTransitionTo reports whether from may legally move to to.
func CanTransitionTo(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusProcessing || s == StatusSucceededButUnrecorded
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
