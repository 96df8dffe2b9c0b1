package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingMethod selects how an order is delivered.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Valid reports whether the shipping method is one of the known values.
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentMomo         PaymentMethod = "momo"
	PaymentCreditCard   PaymentMethod = "credit-card"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentBankTransfer, PaymentMomo, PaymentCreditCard:
		return true
	}
	return false
}

// Customer holds the buyer's contact details as entered on the checkout
// form.
type Customer struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ShippingAddress is the delivery address. Province, district and ward are
// codes into the address cascade tables.
type ShippingAddress struct {
	Address  string `json:"address"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Note     string `json:"note,omitempty"`
}

// OrderItem is a snapshot of one cart line at submission time. Name, price
// and image are copied from the product as resolved at checkout so the
// confirmation page does not depend on the catalogue.
type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// OrderTotals carries the checkout totals as display strings, ready for the
// confirmation page.
type OrderTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// DeliveryWindow is the estimated delivery date range.
type DeliveryWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Order is the immutable record created exactly once at checkout
// submission. Only the most recent order is retained; placing a new order
// overwrites it. Number is the customer-facing order code; ID identifies
// the record itself. ShippingDisplay is the full human-readable address
// line, resolved from the cascade codes at submission time.
type Order struct {
	ID                uuid.UUID       `json:"id"`
	Number            string          `json:"number"`
	OrderDate         time.Time       `json:"order_date"`
	Customer          Customer        `json:"customer"`
	Shipping          ShippingAddress `json:"shipping"`
	ShippingDisplay   string          `json:"shipping_display"`
	ShippingMethod    ShippingMethod  `json:"shipping_method"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	CouponCode        *string         `json:"couponCode,omitempty"`
	Items             []OrderItem     `json:"items"`
	Totals            OrderTotals     `json:"totals"`
	EstimatedDelivery DeliveryWindow  `json:"estimated_delivery"`
}
