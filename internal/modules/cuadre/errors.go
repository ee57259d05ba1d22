package cuadre

import "errors"

var (
	ErrInvalidDay = errors.New("dia must be formatted YYYY-MM-DD")
	ErrForbidden  = errors.New("only approvers can see the full cuadre")
)
