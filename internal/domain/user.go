package domain

import "time"

// UserRole роль пользователя
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

// User represents a registered guest or restaurant administrator
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Phone        *string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true for restaurant administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Caller builds the request identity for the user
func (u *User) Caller() Caller {
	return Caller{UserID: u.ID, IsAdmin: u.IsAdmin()}
}
