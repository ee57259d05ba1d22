package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct tags and returns field -> failed tag, nil when valid.
func Validate(v any) map[string]string {
	return Fields(validate.Struct(v))
}

// Fields flattens a validator error (including the ones gin binding returns)
// into a json-friendly map. Non validation errors map to {"body": "invalid"}.
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[snake(fe.Field())] = fe.Tag()
	}
	return out
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
