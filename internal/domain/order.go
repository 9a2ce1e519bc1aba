package domain

import "errors"

var ErrInvalidAddress = errors.New("invalid address")

// DeliveryMethod is a shipping option from the delivery catalog, immutable
// for the session.
type DeliveryMethod struct {
	ID           int64   `json:"id"`
	ShortName    string  `json:"shortName"`
	Description  string  `json:"description"`
	DeliveryTime string  `json:"deliveryTime"`
	Cost         float64 `json:"cost"`
}

// OrderToCreate is the order-creation request. PaymentIntentID lets the order
// service verify the charge; it never re-triggers it.
type OrderToCreate struct {
	BasketID         string  `json:"basketId"`
	DeliveryMethodID int64   `json:"deliveryMethodId"`
	ShippingAddress  Address `json:"shippingAddress"`
	PaymentIntentID  string  `json:"paymentIntentId"`
}

type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	PictureURL  string  `json:"pictureUrl"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Order struct {
	ID             int64       `json:"id"`
	BuyerEmail     string      `json:"buyerEmail"`
	OrderDate      string      `json:"orderDate"`
	ShipToAddress  Address     `json:"shipToAddress"`
	DeliveryMethod string      `json:"deliveryMethod"`
	DeliveryCost   float64     `json:"deliveryCost"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Status         string      `json:"status"`
	Total          float64     `json:"total"`
}

// User is the authenticated account as returned by the account service.
type User struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}
