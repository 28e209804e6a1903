package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jafarshop/storefront/internal/domain"
)

var (
	// ErrSubmitInFlight is returned when a submission is requested while a
	// previous one is still pending.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrNotAtReview is returned when submission is requested before the
	// review step is reached.
	ErrNotAtReview = errors.New("checkout is not at the review step")
)

const defaultCountry = "US"

// Form holds the checkout wizard state for one session: the current step,
// the collected shipping and payment fields, order notes, and per-field
// validation errors. It is safe for concurrent use.
type Form struct {
	mu sync.Mutex

	step     domain.Step
	shipping domain.ShippingInfo
	payment  domain.PaymentInfo
	notes    string
	errors   domain.ValidationErrors

	// orderID is set once order creation succeeds so a retry after a
	// payment failure reuses the order instead of creating a second one.
	orderID     string
	submitting  bool
	submitError string
}

// NewForm creates the form state for a new checkout session, seeded from
// the authenticated user when one is present.
func NewForm(user *domain.User) *Form {
	f := &Form{
		step: domain.StepShipping,
		shipping: domain.ShippingInfo{
			Country: defaultCountry,
		},
		payment: domain.PaymentInfo{
			PaymentMethod:      domain.PaymentMethodCreditCard,
			BillingAddressSame: true,
			BillingAddress:     domain.Address{Country: defaultCountry},
		},
		errors: domain.ValidationErrors{},
	}

	if user != nil {
		f.shipping.FullName = user.Name
		f.shipping.Email = user.Email
	}

	return f
}

// SetField routes a single field update by path. Shipping and payment
// fields use their bare names ("email", "cardNumber"); billing address
// fields are addressed as "billing.<field>". Phone, card number, and expiry
// values are formatted before storage, and any existing validation error for
// the field is cleared without re-validating.
func (f *Form) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.applyField(field, value); err != nil {
		return err
	}

	delete(f.errors, field)
	return nil
}

func (f *Form) applyField(field, value string) error {
	if section, name, found := strings.Cut(field, "."); found {
		if section != "billing" {
			return fmt.Errorf("unknown field %q", field)
		}
		return f.setBillingField(name, value)
	}

	switch field {
	case "fullName":
		f.shipping.FullName = value
	case "email":
		f.shipping.Email = value
	case "phone":
		f.shipping.Phone = FormatPhone(value)
	case "address":
		f.shipping.Address = value
	case "city":
		f.shipping.City = value
	case "state":
		f.shipping.State = value
	case "zipCode":
		f.shipping.ZipCode = value
	case "country":
		f.shipping.Country = value
	case "paymentMethod":
		method := domain.PaymentMethod(value)
		if !method.IsValid() {
			return fmt.Errorf("invalid payment method %q", value)
		}
		f.payment.PaymentMethod = method
	case "cardNumber":
		f.payment.CardNumber = FormatCardNumber(value)
	case "expiryDate":
		f.payment.ExpiryDate = FormatExpiry(value)
	case "cvv":
		f.payment.CVV = value
	case "cardholderName":
		f.payment.CardholderName = value
	case "billingAddressSame":
		same, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("billingAddressSame must be a boolean: %w", err)
		}
		f.setBillingSame(same)
	case "notes":
		f.notes = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	return nil
}

func (f *Form) setBillingField(name, value string) error {
	switch name {
	case "address":
		f.payment.BillingAddress.Address = value
	case "city":
		f.payment.BillingAddress.City = value
	case "state":
		f.payment.BillingAddress.State = value
	case "zipCode":
		f.payment.BillingAddress.ZipCode = value
	case "country":
		f.payment.BillingAddress.Country = value
	default:
		return fmt.Errorf("unknown field %q", "billing."+name)
	}
	return nil
}

// setBillingSame toggles billing address reuse. Switching to true resets the
// billing address to the empty template and drops its validation errors;
// switching to false keeps whatever was last entered.
func (f *Form) setBillingSame(same bool) {
	f.payment.BillingAddressSame = same
	if !same {
		return
	}

	f.payment.BillingAddress = domain.Address{Country: defaultCountry}
	for key := range f.errors {
		if strings.HasPrefix(key, "billing.") {
			delete(f.errors, key)
		}
	}
}

// Advance runs the current step's validator and moves forward on a pass.
// On a fail it replaces the error map with the validator's findings and
// reports false. Advancing from the review step is not possible; submission
// is the terminal action.
func (f *Form) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs domain.ValidationErrors
	switch f.step {
	case domain.StepShipping:
		errs = validateShipping(f.shipping)
	case domain.StepPayment:
		errs = validatePayment(f.payment)
	default:
		return false
	}

	f.errors = errs
	if len(errs) > 0 {
		return false
	}

	f.step = f.step.Next()
	return true
}

// Back moves to the previous step. Backward navigation is always allowed
// and never validates.
func (f *Form) Back() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.step - 1
	if !f.step.CanTransitionTo(prev) {
		return false
	}
	f.step = prev
	return true
}

// Step returns the current wizard step
func (f *Form) Step() domain.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Shipping returns a copy of the shipping fields
func (f *Form) Shipping() domain.ShippingInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shipping
}

// Payment returns a copy of the payment fields
func (f *Form) Payment() domain.PaymentInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment
}

// Notes returns the order notes
func (f *Form) Notes() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notes
}

// Errors returns a copy of the current validation errors
func (f *Form) Errors() domain.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(domain.ValidationErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SubmitError returns the banner message from the last failed submission,
// or "" when none is pending.
func (f *Form) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitError
}

// OrderID returns the id of the order created by a previous submission
// attempt, or "" when no order exists yet.
func (f *Form) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

func (f *Form) beginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != domain.StepReview {
		return ErrNotAtReview
	}
	if f.submitting {
		return ErrSubmitInFlight
	}

	f.submitting = true
	f.submitError = ""
	return nil
}

func (f *Form) endSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

func (f *Form) setSubmitError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitError = msg
}

func (f *Form) setOrderID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderID = id
}
