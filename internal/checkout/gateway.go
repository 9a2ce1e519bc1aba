package checkout

import (
	"context"
	"fmt"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// IntentStatus is the gateway's view of a payment intent after confirmation.
type IntentStatus string

const (
	IntentSucceeded      IntentStatus = "succeeded"
	IntentProcessing     IntentStatus = "processing"
	IntentRequiresAction IntentStatus = "requires_action"
)

// PaymentIntent is the confirmation result. ID is what the order service
// uses to verify the charge.
type PaymentIntent struct {
	ID     string
	Status IntentStatus
}

type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type BillingDetails struct {
	Name    string
	Email   string
	Address domain.Address
}

// ConfirmParams carries everything the gateway needs alongside the client
// secret. Addresses use the two-letter country code.
type ConfirmParams struct {
	Card     Card
	Billing  BillingDetails
	Shipping BillingDetails
}

// PaymentGateway is the client-side protocol for driving the external
// gateway. The gateway never sees the basket or the order, only the amount
// and billing metadata implied by the intent.
type PaymentGateway interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, params ConfirmParams) (*PaymentIntent, error)
}

type PaymentErrorType string

const (
	PaymentErrorCard                   PaymentErrorType = "card_error"
	PaymentErrorValidation             PaymentErrorType = "validation_error"
	PaymentErrorAuthenticationRequired PaymentErrorType = "authentication_required"
	PaymentErrorOther                  PaymentErrorType = "other"
)

// PaymentError is a gateway-reported failure. No order is ever created after
// one.
type PaymentError struct {
	Type    PaymentErrorType
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed (%s): %s", e.Type, e.Message)
}

// UserMessage selects the user-facing message by error subtype.
func (e *PaymentError) UserMessage() string {
	switch e.Type {
	case PaymentErrorCard, PaymentErrorValidation:
		if e.Message != "" {
			return e.Message
		}
		return "Payment failed. Please check your card details."
	case PaymentErrorAuthenticationRequired:
		return "Authentication required. Please try again."
	default:
		return "Payment failed. Please try again."
	}
}
