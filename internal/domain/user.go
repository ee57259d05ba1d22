package domain

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleAnfitrion   UserRole = "anfitrion"
	RoleBarbero     UserRole = "barbero"
	RoleEstilista   UserRole = "estilista"
	RoleManicurista UserRole = "manicurista"
	RoleColorista   UserRole = "colorista"
)

var AllRoles = []UserRole{
	RoleAdmin,
	RoleAnfitrion,
	RoleBarbero,
	RoleEstilista,
	RoleManicurista,
	RoleColorista,
}

func (r UserRole) Valid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CanApprove reports whether the role may decide pending vouchers.
func (r UserRole) CanApprove() bool {
	return r == RoleAdmin || r == RoleAnfitrion
}

// IsProfessional reports whether the role is one of the service-provider variants.
func (r UserRole) IsProfessional() bool {
	switch r {
	case RoleBarbero, RoleEstilista, RoleManicurista, RoleColorista:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:32;index;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Local        string    `json:"local" gorm:"size:128;index"`
	Active       bool      `json:"active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
