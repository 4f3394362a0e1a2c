package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient || r == RoleStaff
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
