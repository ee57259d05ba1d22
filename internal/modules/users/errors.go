package users

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrCannotDeactivate = errors.New("admins can not deactivate themselves")
)
