package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz is not published")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoActiveSubmission = errors.New("no active submission found for this quiz")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizHasSubmissions = errors.New("quiz has submissions")
)

// ValidationError carries a rule violation message destined for a 400
// response. It is distinct from the sentinels above so controllers can
// surface the exact offending rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
