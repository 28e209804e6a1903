package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"partial three digits", "555", "555"},
		{"partial six digits", "555123", "(555) 123"},
		{"full ten digits", "5551234567", "(555) 123-4567"},
		{"already formatted", "(555) 123-4567", "(555) 123-4567"},
		{"letters stripped", "555-abc-1234567", "(555) 123-4567"},
		{"excess digits truncated", "55512345678999", "(555) 123-4567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestFormatPhoneIdempotent(t *testing.T) {
	once := FormatPhone("5551234567")
	assert.Equal(t, once, FormatPhone(once))
}

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"under four digits kept bare", "424", "424"},
		{"full sixteen digits", "4242424242424242", "4242 4242 4242 4242"},
		{"already formatted", "4242 4242 4242 4242", "4242 4242 4242 4242"},
		{"partial run grouped", "42424242", "4242 4242"},
		{"non digits stripped", "4242-4242-4242-4242", "4242 4242 4242 4242"},
		{"truncated to sixteen", "42424242424242429999", "4242 4242 4242 4242"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCardNumber(tt.in))
		})
	}
}

func TestFormatCardNumberIdempotent(t *testing.T) {
	once := FormatCardNumber("4242424242424242")
	assert.Equal(t, once, FormatCardNumber(once))
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single digit", "1", "1"},
		{"two digits get slash", "12", "12/"},
		{"four digits", "1225", "12/25"},
		{"already formatted", "12/25", "12/25"},
		{"excess digits truncated", "122534", "12/25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExpiry(tt.in))
		})
	}
}

func TestFormatExpiryIdempotent(t *testing.T) {
	once := FormatExpiry("1225")
	assert.Equal(t, once, FormatExpiry(once))
}
