package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents the authenticated customer provided by the auth collaborator
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ShippingInfo holds the fields collected on the shipping step
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Address is the billing address shape: shipping minus name/email/phone
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// PaymentInfo holds the fields collected on the payment step
type PaymentInfo struct {
	PaymentMethod      PaymentMethod `json:"paymentMethod"`
	CardNumber         string        `json:"cardNumber"`
	ExpiryDate         string        `json:"expiryDate"`
	CVV                string        `json:"cvv"`
	CardholderName     string        `json:"cardholderName"`
	BillingAddressSame bool          `json:"billingAddressSame"`
	BillingAddress     Address       `json:"billingAddress"`
}

// ValidationErrors maps a field key to a human-readable message. Billing
// address fields are keyed with a "billing." prefix.
type ValidationErrors map[string]string

// CartItem represents a line item in the customer's cart
type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// CartSummary holds the derived totals for the current cart contents
type CartSummary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"freeShipping"`
}

// OneLine renders the shipping address as the single concatenated string the
// orders endpoint expects.
func (s ShippingInfo) OneLine() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", s.Address, s.City, s.State, s.ZipCode, s.Country)
}

// OneLine renders the billing address as a single string for the payment
// endpoint.
func (a Address) OneLine() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Address, a.City, a.State, a.ZipCode, a.Country)
}
