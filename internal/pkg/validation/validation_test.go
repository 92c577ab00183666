package validation

import (
	"testing"

	"pos-terminal/internal/common/enum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string                 `json:"customerName" validate:"notblank"`
	Method enum.PaymentMethodEnum `json:"paymentMethod" validate:"required,enum"`
	Qty    int                    `json:"quantity" validate:"min=1"`
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate(sample{Name: "A", Method: enum.CASH, Qty: 1}))
}

func TestValidate_Messages(t *testing.T) {
	err := Validate(sample{Name: "  ", Method: "CARD", Qty: 0})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Validation failed:")
	assert.Contains(t, msg, "customerName must not be blank")
	assert.Contains(t, msg, "paymentMethod must be one of the allowed enum values")
	assert.Contains(t, msg, "quantity must be greater than or equal to 1")
}

func TestSetup(t *testing.T) {
	require.NoError(t, Setup())
	assert.Error(t, Validate(sample{}))
}

func TestValidate_Phone(t *testing.T) {
	type contact struct {
		Phone string `json:"phoneNumber" validate:"phone"`
	}

	for _, ok := range []string{"999", "9876543210", "+91 98765 43210", "021-555-0199"} {
		assert.NoError(t, Validate(contact{Phone: ok}), ok)
	}
	for _, bad := range []string{"", "12-", "abc1234567", "+", "555 0199 ext 2"} {
		err := Validate(contact{Phone: bad})
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "phoneNumber must be a valid phone number")
	}
}
