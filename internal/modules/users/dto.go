package users

type UserListFilter struct {
	Role   string `form:"role"`
	Local  string `form:"local"`
	Active *bool  `form:"active"`
	Query  string `form:"q"` // name/email contains
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	Local    string `json:"local"`
}

// UpdateUserRequest only touches the fields that are present.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2"`
	Role  *string `json:"role"`
	Local *string `json:"local"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}
