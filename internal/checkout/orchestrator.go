// Package checkout drives the ordered protocol from "basket ready" to
// "order placed": delivery method selection, payment-intent lifecycle,
// payment confirmation and order creation. The one hard ordering constraint
// is that an order is never created unless the gateway confirmed success.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/storage"
)

// BasketStore is the slice of the basket store the orchestrator needs.
type BasketStore interface {
	Basket() *domain.Basket
	Totals() domain.BasketTotals
	Adopt(basket *domain.Basket)
	SetBasket(ctx context.Context, basket *domain.Basket) error
	Clear(ctx context.Context)
}

type OrdersAPI interface {
	DeliveryMethods(ctx context.Context) ([]domain.DeliveryMethod, error)
	CreateOrder(ctx context.Context, order domain.OrderToCreate) (*domain.Order, error)
}

type PaymentsAPI interface {
	CreatePaymentIntent(ctx context.Context, basketID string, deliveryMethodID int64) (*domain.Basket, error)
}

type AccountAPI interface {
	Address(ctx context.Context) (*domain.Address, error)
	UpdateAddress(ctx context.Context, address domain.Address) error
}

// SessionInfo is the read-only view of the session collaborator.
type SessionInfo interface {
	Authenticated() bool
	CurrentUser() *domain.User
}

type Config struct {
	// StrictRepricing blocks submission while a delivery-method change has
	// not been repriced into the payment intent. Off by default: the
	// previous client secret remains usable and only the displayed amount
	// can be stale.
	StrictRepricing bool
}

type Orchestrator struct {
	mu       sync.Mutex
	status   Status
	baskets  BasketStore
	orders   OrdersAPI
	payments PaymentsAPI
	account  AccountAPI
	gateway  PaymentGateway
	sess     SessionInfo
	records  storage.Store // durable note for paid-but-unrecorded orders, may be nil
	cfg      Config

	methods      []domain.DeliveryMethod
	selected     *domain.DeliveryMethod
	clientSecret string
	repriceStale bool
}

func NewOrchestrator(
	baskets BasketStore,
	orders OrdersAPI,
	payments PaymentsAPI,
	account AccountAPI,
	gateway PaymentGateway,
	sess SessionInfo,
	records storage.Store,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		status:   StatusIdle,
		baskets:  baskets,
		orders:   orders,
		payments: payments,
		account:  account,
		gateway:  gateway,
		sess:     sess,
		records:  records,
		cfg:      cfg,
	}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// DeliveryMethods returns the catalog loaded during initialization.
func (o *Orchestrator) DeliveryMethods() []domain.DeliveryMethod {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.methods
}

// SelectedMethod returns the currently selected delivery method, or nil.
func (o *Orchestrator) SelectedMethod() *domain.DeliveryMethod {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return nil
	}
	m := *o.selected
	return &m
}

func (o *Orchestrator) transition(to Status) error {
	if !CanTransitionTo(o.status, to) {
		return fmt.Errorf("%w: %s to %s", IllegalTransitionError, o.status, to)
	}
	o.status = to
	return nil
}

// Initialize loads the delivery catalog and creates the payment intent for
// the current basket, concurrently. Failure of either fails initialization;
// it may be retried as a whole from Failed.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	b := o.baskets.Basket()
	if b == nil || len(b.Items) == 0 {
		return ErrEmptyBasket
	}
	if err := o.transition(StatusInitializing); err != nil {
		return err
	}

	var (
		methods []domain.DeliveryMethod
		updated *domain.Basket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		methods, err = o.orders.DeliveryMethods(gctx)
		if err != nil {
			return fmt.Errorf("load delivery methods: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		updated, err = o.payments.CreatePaymentIntent(gctx, b.ID, 0)
		if err != nil {
			return fmt.Errorf("create payment intent: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		o.status = StatusFailed
		return err
	}

	o.methods = methods
	if len(methods) > 0 {
		m := methods[0]
		o.selected = &m
	}
	o.baskets.Adopt(updated)
	o.clientSecret = updated.ClientSecret
	o.repriceStale = false
	return o.transition(StatusReady)
}

// PrefillAddress loads the user's saved address for form prefill, with the
// country converted to code form. Best-effort: any failure is logged and a
// nil address returned; it never blocks checkout.
func (o *Orchestrator) PrefillAddress(ctx context.Context) *domain.Address {
	if !o.sess.Authenticated() {
		return nil
	}
	saved, err := o.account.Address(ctx)
	if err != nil {
		log.Printf("prefill address: %v", err)
		return nil
	}
	addr := saved.FromOrderService()
	return &addr
}

// SelectDeliveryMethod records the user's choice, stamps it onto the basket
// and refreshes the payment intent for the new total. An intent refresh
// failure follows the StrictRepricing policy: blocked until repriced, or
// logged and ignored since the previous client secret remains usable.
func (o *Orchestrator) SelectDeliveryMethod(ctx context.Context, methodID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var method *domain.DeliveryMethod
	for i := range o.methods {
		if o.methods[i].ID == methodID {
			method = &o.methods[i]
			break
		}
	}
	if method == nil {
		return fmt.Errorf("unknown delivery method %d", methodID)
	}
	if err := o.transition(StatusDeliverySelected); err != nil {
		return err
	}

	m := *method
	o.selected = &m

	b := o.baskets.Basket()
	if b == nil {
		return ErrEmptyBasket
	}
	b.DeliveryMethodID = m.ID
	b.ShippingPrice = m.Cost
	if err := o.baskets.SetBasket(ctx, b); err != nil {
		return fmt.Errorf("persist delivery method: %w", err)
	}

	updated, err := o.payments.CreatePaymentIntent(ctx, b.ID, m.ID)
	if err != nil {
		if o.cfg.StrictRepricing {
			o.repriceStale = true
			return fmt.Errorf("refresh payment intent: %w", err)
		}
		log.Printf("refresh payment intent for method %d: %v", m.ID, err)
		return nil
	}

	o.baskets.Adopt(updated)
	if updated.ClientSecret != "" {
		o.clientSecret = updated.ClientSecret
	}
	o.repriceStale = false
	return nil
}

type SubmitRequest struct {
	Address domain.Address
	Card    Card
}

type Outcome string

const (
	OutcomeCompleted  Outcome = "completed"
	OutcomeProcessing Outcome = "processing"
)

type Result struct {
	Outcome         Outcome
	OrderID         int64
	PaymentIntentID string
}

// Submit runs the payment protocol: validate, best-effort address save,
// confirm against the gateway, then create the order strictly after a
// succeeded confirmation. Validation failures happen before any network call
// and leave the status untouched.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.gateway == nil || o.clientSecret == "" {
		return nil, ErrNotReady
	}
	b := o.baskets.Basket()
	if b == nil || len(b.Items) == 0 {
		return nil, ErrEmptyBasket
	}
	if err := req.Address.Validate(); err != nil {
		return nil, err
	}
	if o.selected == nil {
		return nil, ErrNoDeliveryMethod
	}
	if o.cfg.StrictRepricing && o.repriceStale {
		return nil, ErrStalePricing
	}

	if err := o.transition(StatusSubmitting); err != nil {
		return nil, err
	}

	// Best-effort: the saved address is a convenience, not a dependency.
	if err := o.account.UpdateAddress(ctx, req.Address.ForOrderService()); err != nil {
		log.Printf("save address before payment: %v", err)
	}

	var email string
	if user := o.sess.CurrentUser(); user != nil {
		email = user.Email
	}
	contact := BillingDetails{
		Name:    req.Address.FullName(),
		Email:   email,
		Address: req.Address,
	}
	intent, err := o.gateway.ConfirmCardPayment(ctx, o.clientSecret, ConfirmParams{
		Card:     req.Card,
		Billing:  contact,
		Shipping: contact,
	})
	if err != nil {
		o.status = StatusFailed
		var payErr *PaymentError
		if errors.As(err, &payErr) {
			return nil, payErr
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	switch intent.Status {
	case IntentSucceeded:
		if err := o.transition(StatusPaymentConfirmed); err != nil {
			return nil, err
		}
	case IntentProcessing:
		// Async payment method: success path for the user, but no order is
		// created here; the order service reconciles on capture.
		o.status = StatusProcessing
		return &Result{Outcome: OutcomeProcessing, PaymentIntentID: intent.ID}, nil
	default:
		o.status = StatusFailed
		return nil, fmt.Errorf("%w: intent status %q", ErrPaymentIncomplete, intent.Status)
	}

	if err := o.transition(StatusOrderCreating); err != nil {
		return nil, err
	}
	order, err := o.orders.CreateOrder(ctx, domain.OrderToCreate{
		BasketID:         b.ID,
		DeliveryMethodID: o.selected.ID,
		ShippingAddress:  req.Address.ForOrderService(),
		PaymentIntentID:  intent.ID,
	})
	if err != nil {
		o.status = StatusSucceededButUnrecorded
		o.recordUnrecordedPayment(intent.ID, b.ID, err)
		return nil, &PartialFailureError{PaymentIntentID: intent.ID, Err: err}
	}

	o.baskets.Clear(ctx)
	if err := o.transition(StatusCompleted); err != nil {
		return nil, err
	}
	return &Result{Outcome: OutcomeCompleted, OrderID: order.ID, PaymentIntentID: intent.ID}, nil
}

// recordUnrecordedPayment leaves a durable trace of a captured payment with
// no order, so the condition survives even if the caller goes away before
// reporting it.
func (o *Orchestrator) recordUnrecordedPayment(intentID, basketID string, cause error) {
	log.Printf("payment %s succeeded but order creation failed for basket %s: %v", intentID, basketID, cause)
	if o.records == nil {
		return
	}
	entry := fmt.Sprintf("basket=%s at=%s cause=%v", basketID, time.Now().UTC().Format(time.RFC3339), cause)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := o.records.Set(ctx, "unrecorded_payment:"+intentID, entry); err != nil {
		log.Printf("record unrecorded payment %s: %v", intentID, err)
	}
}
