package checkout

import (
	"regexp"
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
)

var (
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern  = regexp.MustCompile(`^\(\d{3}\)\s\d{3}-\d{4}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
)

// validateShipping checks the shipping step in full. It returns an empty map
// when the step may advance.
func validateShipping(s domain.ShippingInfo) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	required := []struct {
		key, label, value string
	}{
		{"fullName", "Full name", s.FullName},
		{"email", "Email", s.Email},
		{"phone", "Phone", s.Phone},
		{"address", "Address", s.Address},
		{"city", "City", s.City},
		{"state", "State", s.State},
		{"zipCode", "ZIP code", s.ZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs[f.key] = f.label + " is required"
		}
	}

	if _, ok := errs["email"]; !ok && !emailPattern.MatchString(s.Email) {
		errs["email"] = "Email is invalid"
	}
	if _, ok := errs["phone"]; !ok && !phonePattern.MatchString(s.Phone) {
		errs["phone"] = "Phone must match (555) 123-4567"
	}

	return errs
}

// validatePayment checks the payment step in full. Card fields are only
// enforced for credit card payments; paypal and apple_pay always pass.
func validatePayment(p domain.PaymentInfo) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if !p.PaymentMethod.RequiresCard() {
		return errs
	}

	cardDigits := strings.ReplaceAll(p.CardNumber, " ", "")
	if !cardPattern.MatchString(cardDigits) {
		errs["cardNumber"] = "Card number must be 16 digits"
	}
	if !expiryPattern.MatchString(p.ExpiryDate) {
		errs["expiryDate"] = "Expiry date must be MM/YY"
	}
	if !cvvPattern.MatchString(p.CVV) {
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}
	if strings.TrimSpace(p.CardholderName) == "" {
		errs["cardholderName"] = "Cardholder name is required"
	}

	if !p.BillingAddressSame {
		required := []struct {
			key, label, value string
		}{
			{"billing.address", "Billing address", p.BillingAddress.Address},
			{"billing.city", "Billing city", p.BillingAddress.City},
			{"billing.state", "Billing state", p.BillingAddress.State},
			{"billing.zipCode", "Billing ZIP code", p.BillingAddress.ZipCode},
		}
		for _, f := range required {
			if strings.TrimSpace(f.value) == "" {
				errs[f.key] = f.label + " is required"
			}
		}
	}

	return errs
}
