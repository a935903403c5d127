package custom_err

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	// User errors
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenNotActive     = errors.New("token not active yet")

	// Payment and risk errors
	ErrHighRiskBlocked = errors.New("payment blocked: high risk transaction")
	ErrNoHistory       = errors.New("no transaction history")
	ErrHistoryTooLong  = errors.New("transaction history too long")

	// Validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidVPA    = errors.New("invalid payee VPA")
)
