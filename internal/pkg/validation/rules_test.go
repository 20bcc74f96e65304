package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "local MTN number", phone: "0772123456", want: true},
		{name: "local Airtel number", phone: "0701234567", want: true},
		{name: "international format", phone: "256772123456", want: true},
		{name: "prefix out of range", phone: "0791234567", want: false},
		{name: "too short", phone: "077212345", want: false},
		{name: "too long", phone: "07721234567", want: false},
		{name: "landline", phone: "0414123456", want: false},
		{name: "plus prefix rejected", phone: "+256772123456", want: false},
		{name: "empty", phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "simple address", email: "okello@example.ug", want: true},
		{name: "with plus tag", email: "okello+tag@example.com", want: true},
		{name: "missing at", email: "okello.example.ug", want: false},
		{name: "missing tld", email: "okello@example", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))
	assert.False(t, IsValidPassword(""))
}
