package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepTransitions(t *testing.T) {
	// Forward only one step at a time
	assert.True(t, StepShipping.CanTransitionTo(StepPayment))
	assert.False(t, StepShipping.CanTransitionTo(StepReview))
	assert.True(t, StepPayment.CanTransitionTo(StepReview))

	// Backward always allowed
	assert.True(t, StepReview.CanTransitionTo(StepPayment))
	assert.True(t, StepReview.CanTransitionTo(StepShipping))
	assert.True(t, StepPayment.CanTransitionTo(StepShipping))

	// Out-of-range targets rejected
	assert.False(t, StepShipping.CanTransitionTo(Step(0)))
	assert.False(t, StepReview.CanTransitionTo(Step(4)))
}

func TestStepNext(t *testing.T) {
	assert.Equal(t, StepPayment, StepShipping.Next())
	assert.Equal(t, StepReview, StepPayment.Next())
	assert.Equal(t, StepReview, StepReview.Next())
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodApplePay} {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, PaymentMethod("cash").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestPaymentMethodRequiresCard(t *testing.T) {
	assert.True(t, PaymentMethodCreditCard.RequiresCard())
	assert.False(t, PaymentMethodPayPal.RequiresCard())
	assert.False(t, PaymentMethodApplePay.RequiresCard())
}

func TestAddressOneLine(t *testing.T) {
	s := ShippingInfo{
		Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704", Country: "US",
	}
	assert.Equal(t, "1 Main St, Springfield, IL 62704, US", s.OneLine())

	a := Address{Address: "2 Oak Ave", City: "Shelbyville", State: "IL", ZipCode: "62565", Country: "US"}
	assert.Equal(t, "2 Oak Ave, Shelbyville, IL 62565, US", a.OneLine())
}
