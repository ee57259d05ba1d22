package dashboard

import "errors"

var (
	ErrInvalidDay   = errors.New("desde and hasta must be formatted YYYY-MM-DD")
	ErrInvalidRange = errors.New("desde must not be after hasta and the range can not exceed 366 days")
)
