package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a process-wide shared identity. PasswordHash is a bcrypt hash;
// the plaintext never leaves the auth layer.
type User struct {
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByUsername(username string) (*User, error)
	// UpdatePassword returns ErrUserNotFound when username does not exist.
	UpdatePassword(username string, passwordHash []byte) error
	List() ([]*User, error)
	HasAdmin() (bool, error)
}
