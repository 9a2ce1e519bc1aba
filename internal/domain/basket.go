package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BasketItem is a single product line in a basket. Identity key is ID (the
// product id); no two items in a basket share an ID.
type BasketItem struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	PictureURL  string  `json:"pictureUrl"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
}

// Basket mirrors the remote basket resource. ClientSecret, PaymentIntentID,
// DeliveryMethodID and ShippingPrice are computed server-side and only ever
// replaced wholesale from a server response.
type Basket struct {
	ID               string       `json:"id"`
	Items            []BasketItem `json:"items"`
	ClientSecret     string       `json:"clientSecret,omitempty"`
	PaymentIntentID  string       `json:"paymentIntentId,omitempty"`
	DeliveryMethodID int64        `json:"deliveryMethodId,omitempty"`
	ShippingPrice    float64      `json:"shippingPrice,omitempty"`
}

// BasketTotals is a pure projection of a basket, never stored.
type BasketTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// NewBasket creates an empty basket with a freshly generated identifier.
func NewBasket() *Basket {
	return &Basket{
		ID:    uuid.NewString(),
		Items: []BasketItem{},
	}
}

// Item returns the item with the given product id, or nil.
func (b *Basket) Item(productID int64) *BasketItem {
	for i := range b.Items {
		if b.Items[i].ID == productID {
			return &b.Items[i]
		}
	}
	return nil
}

// Totals derives subtotal/shipping/total from the current items. Decimal
// arithmetic keeps repeated derivations identical regardless of item order.
func (b *Basket) Totals() BasketTotals {
	subtotal := decimal.Zero
	for _, item := range b.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	shipping := decimal.NewFromFloat(b.ShippingPrice)
	return BasketTotals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    subtotal.Add(shipping).InexactFloat64(),
	}
}

// Clone returns a deep copy so callers can mutate without aliasing the
// store's authoritative state.
func (b *Basket) Clone() *Basket {
	if b == nil {
		return nil
	}
	c := *b
	c.Items = make([]BasketItem, len(b.Items))
	copy(c.Items, b.Items)
	return &c
}
