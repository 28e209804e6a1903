package checkout

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/cart"
)

const (
	orderFailedMessage   = "Failed to create order. Please try again."
	paymentFailedMessage = "Payment processing failed. Please try again."
	orderPlacedMessage   = "Order placed successfully!"
)

// NavState carries the flags a redirect delivers to its destination view
type NavState struct {
	Success bool
	Message string
}

// Navigator performs redirects on behalf of the checkout flow
type Navigator interface {
	Redirect(path string, state NavState)
}

// Submitter sequences the terminal checkout submission: create the order,
// then process its payment, then clear the cart and redirect to the order
// confirmation view.
type Submitter struct {
	backend *backend.Client
	cart    cart.Cart
	logger  *zap.Logger
}

// NewSubmitter creates a new checkout submitter
func NewSubmitter(client *backend.Client, c cart.Cart, logger *zap.Logger) *Submitter {
	return &Submitter{
		backend: client,
		cart:    c,
		logger:  logger,
	}
}

// Submit places the order described by the form. It is only valid from the
// review step, and a single submission may be in flight at a time.
//
// Payment is never attempted before order creation succeeds. A payment
// failure leaves the created order in place with no compensation; the order
// id is retained on the form so retrying submits payment for the same order
// rather than creating a duplicate.
func (s *Submitter) Submit(ctx context.Context, f *Form, nav Navigator) error {
	if err := f.beginSubmit(); err != nil {
		return err
	}
	defer f.endSubmit()

	orderID := f.OrderID()
	if orderID == "" {
		order, err := s.backend.CreateOrder(ctx, s.buildOrderRequest(f))
		if err != nil {
			s.logger.Error("Order creation failed", zap.Error(err))
			f.setSubmitError(bannerMessage(err, orderFailedMessage))
			return err
		}
		orderID = order.ID
		f.setOrderID(orderID)
	}

	if err := s.backend.ProcessPayment(ctx, s.buildPaymentRequest(f, orderID)); err != nil {
		s.logger.Error("Payment processing failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		f.setSubmitError(bannerMessage(err, paymentFailedMessage))
		return err
	}

	s.cart.Clear()
	nav.Redirect("/orders/"+orderID, NavState{
		Success: true,
		Message: orderPlacedMessage,
	})
	return nil
}

func (s *Submitter) buildOrderRequest(f *Form) backend.OrderRequest {
	items := s.cart.Items()
	lines := make([]backend.OrderLineItem, len(items))
	for i, item := range items {
		lines[i] = backend.OrderLineItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		}
	}

	return backend.OrderRequest{
		Items:           lines,
		ShippingAddress: f.Shipping().OneLine(),
		PaymentMethod:   string(f.Payment().PaymentMethod),
		Notes:           f.Notes(),
	}
}

func (s *Submitter) buildPaymentRequest(f *Form, orderID string) backend.PaymentRequest {
	payment := f.Payment()
	shipping := f.Shipping()

	billingAddress := payment.BillingAddress.OneLine()
	if payment.BillingAddressSame {
		billingAddress = shipping.OneLine()
	}

	req := backend.PaymentRequest{
		OrderID:        orderID,
		PaymentMethod:  string(payment.PaymentMethod),
		Amount:         s.cart.Summary().Total.InexactFloat64(),
		Currency:       "USD",
		BillingAddress: billingAddress,
	}

	if payment.PaymentMethod.RequiresCard() {
		month, year := splitExpiry(payment.ExpiryDate)
		req.CardDetails = &backend.CardDetails{
			Number:     strings.ReplaceAll(payment.CardNumber, " ", ""),
			ExpMonth:   month,
			ExpYear:    year,
			CVC:        payment.CVV,
			HolderName: payment.CardholderName,
		}
	}

	return req
}

// splitExpiry parses a validated MM/YY value into a month and a four-digit
// year.
func splitExpiry(expiry string) (month, year int) {
	mm, yy, found := strings.Cut(expiry, "/")
	if !found {
		return 0, 0
	}
	month, _ = strconv.Atoi(mm)
	year, _ = strconv.Atoi(yy)
	if year > 0 {
		year += 2000
	}
	return month, year
}

// bannerMessage prefers the server-provided error message and falls back to
// a generic one.
func bannerMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
