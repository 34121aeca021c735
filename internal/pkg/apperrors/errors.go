package apperrors

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDailyLimitExceeded   = errors.New("daily generation limit exceeded")
	ErrMonthlyLimitExceeded = errors.New("monthly generation limit exceeded")
	ErrProviderError        = errors.New("content provider error")
	ErrProviderTimeout      = errors.New("content provider timeout")
	ErrProviderUnavailable  = errors.New("content provider unavailable")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrCacheMiss            = errors.New("cache miss")
)

type Error struct {
	Err     error
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
		Code:    "INTERNAL_ERROR",
	}
}
