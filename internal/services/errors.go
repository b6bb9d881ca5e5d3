package services

import "errors"

// Failure kinds surfaced by the services. Handlers translate these into
// HTTP statuses; raw storage errors never leave this package.
var (
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
	ErrOTPSendFailed       = errors.New("OTP send failed")
	ErrOTPRateLimited      = errors.New("too many OTP requests")
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrder        = errors.New("order must contain at least one item with a positive quantity")
	ErrPersistenceFailure  = errors.New("storage failure")
)
