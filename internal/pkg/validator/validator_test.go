package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email        string `validate:"required,email"`
	SplitPercent int    `validate:"omitempty,oneof=100 50 45"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.cl"}))

	errs := Validate(sample{Email: "nope", SplitPercent: 60})
	assert.Equal(t, map[string]string{"email": "email", "split_percent": "oneof"}, errs)
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Equal(t, map[string]string{"body": "invalid"}, Fields(errors.New("unexpected EOF")))
}
