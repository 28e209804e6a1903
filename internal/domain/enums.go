package domain

// Step represents a stage of the checkout flow
type Step int

const (
	StepShipping Step = 1
	StepPayment  Step = 2
	StepReview   Step = 3
)

// IsValid checks if the step is valid
func (s Step) IsValid() bool {
	switch s {
	case StepShipping, StepPayment, StepReview:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a step transition is allowed. Moving backward is
// always allowed; moving forward only one step at a time (the form gates
// forward moves behind validation).
func (s Step) CanTransitionTo(next Step) bool {
	if !next.IsValid() {
		return false
	}
	if next < s {
		return true
	}
	return next == s+1
}

// Next returns the following step. StepReview is terminal.
func (s Step) Next() Step {
	if s == StepReview {
		return StepReview
	}
	return s + 1
}

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// PaymentMethod represents how the customer pays for an order
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
	PaymentMethodApplePay   PaymentMethod = "apple_pay"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodApplePay:
		return true
	default:
		return false
	}
}

// RequiresCard reports whether card fields must be collected and validated
// for this payment method
func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentMethodCreditCard
}
