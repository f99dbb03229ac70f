package domain

import "errors"

// Domain errors
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("username already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryKindMismatch = errors.New("category kind does not match transaction kind")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidKind          = errors.New("invalid transaction kind")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
	ErrDateRequired         = errors.New("date is required")
	ErrMemoTooLong          = errors.New("memo exceeds maximum length")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrTooManyAttempts      = errors.New("too many login attempts")
	ErrForbidden            = errors.New("forbidden")
)

// Validation constants
const (
	MinPasswordLength = 6
	MaxMemoLength     = 500
)
