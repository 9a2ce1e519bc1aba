package checkout

import (
	"context"
	"sync"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
)

// MockBasketStore implements BasketStore for testing
type MockBasketStore struct {
	mu      sync.Mutex
	basket  *domain.Basket
	adopted *domain.Basket
	setErr  error
	cleared bool
}

func (m *MockBasketStore) Basket() *domain.Basket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.basket.Clone()
}

func (m *MockBasketStore) Totals() domain.BasketTotals {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.basket == nil {
		return domain.BasketTotals{}
	}
	return m.basket.Totals()
}

func (m *MockBasketStore) Adopt(basket *domain.Basket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adopted = basket
	m.basket = basket.Clone()
}

func (m *MockBasketStore) SetBasket(_ context.Context, basket *domain.Basket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.basket = basket.Clone()
	return nil
}

func (m *MockBasketStore) Clear(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.basket = nil
	m.cleared = true
}

// MockOrdersAPI implements OrdersAPI for testing
type MockOrdersAPI struct {
	Methods    []domain.DeliveryMethod
	MethodsErr error
	Order      *domain.Order
	CreateErr  error

	CreateCalls int
	LastCreated *domain.OrderToCreate
}

func (m *MockOrdersAPI) DeliveryMethods(context.Context) ([]domain.DeliveryMethod, error) {
	return m.Methods, m.MethodsErr
}

func (m *MockOrdersAPI) CreateOrder(_ context.Context, order domain.OrderToCreate) (*domain.Order, error) {
	m.CreateCalls++
	m.LastCreated = &order
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.Order, nil
}

// MockPaymentsAPI implements PaymentsAPI for testing
type MockPaymentsAPI struct {
	Basket *domain.Basket
	Err    error

	Calls        int
	LastMethodID int64
}

func (m *MockPaymentsAPI) CreatePaymentIntent(_ context.Context, _ string, deliveryMethodID int64) (*domain.Basket, error) {
	m.Calls++
	m.LastMethodID = deliveryMethodID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Basket, nil
}

// MockAccountAPI implements AccountAPI for testing
type MockAccountAPI struct {
	Saved     *domain.Address
	GetErr    error
	UpdateErr error

	Updated *domain.Address
}

func (m *MockAccountAPI) Address(context.Context) (*domain.Address, error) {
	return m.Saved, m.GetErr
}

func (m *MockAccountAPI) UpdateAddress(_ context.Context, address domain.Address) error {
	m.Updated = &address
	return m.UpdateErr
}

// MockGateway implements PaymentGateway for testing
type MockGateway struct {
	Intent *PaymentIntent
	Err    error

	Calls      int
	LastSecret string
	LastParams ConfirmParams
}

func (m *MockGateway) ConfirmCardPayment(_ context.Context, clientSecret string, params ConfirmParams) (*PaymentIntent, error) {
	m.Calls++
	m.LastSecret = clientSecret
	m.LastParams = params
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Intent, nil
}

// MockSession implements SessionInfo for testing
type MockSession struct {
	User *domain.User
}

func (m *MockSession) Authenticated() bool {
	return m.User != nil
}

func (m *MockSession) CurrentUser() *domain.User {
	return m.User
}
