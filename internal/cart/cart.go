package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// Cart exposes the current cart contents and derived totals to the
// checkout flow.
type Cart interface {
	Items() []domain.CartItem
	Summary() domain.CartSummary
	Clear()
	IsEmpty() bool
}

// Pricing holds the rates used to derive a cart summary
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricing returns the storefront's standard rates: free shipping at
// $50, $5.99 flat rate below it, 8% tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShipping:          decimal.RequireFromString("5.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// Memory is an in-process cart implementation
type Memory struct {
	mu      sync.Mutex
	items   []domain.CartItem
	pricing Pricing
}

// NewMemory creates an in-memory cart with the given pricing and initial
// line items.
func NewMemory(pricing Pricing, items ...domain.CartItem) *Memory {
	return &Memory{
		items:   append([]domain.CartItem(nil), items...),
		pricing: pricing,
	}
}

// Items returns a copy of the current line items
func (m *Memory) Items() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartItem(nil), m.items...)
}

// Summary derives the cart totals: subtotal over all lines, flat-rate
// shipping waived at the free-shipping threshold, tax on the subtotal,
// amounts rounded to cents.
func (m *Memory) Summary() domain.CartSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range m.items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	freeShipping := subtotal.GreaterThanOrEqual(m.pricing.FreeShippingThreshold)
	shipping := m.pricing.FlatShipping
	if freeShipping {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(m.pricing.TaxRate).Round(2)

	return domain.CartSummary{
		Subtotal:     subtotal,
		Shipping:     shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
		FreeShipping: freeShipping,
	}
}

// Clear drops all line items
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

// IsEmpty reports whether the cart has no line items
func (m *Memory) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) == 0
}
