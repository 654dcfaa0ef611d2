package users

import (
	"errors"
	"strings"

	"github.com/magabrotheeeer/profile-service/internal/lib/validation"
)

// Ошибки уровня сервиса. Обработчики сопоставляют их со статусами HTTP через errors.Is.
var (
	ErrDuplicate          = errors.New("email or mobile already in use")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInternal           = errors.New("internal server error")
)

// ValidationError содержит все нарушения, найденные во входных данных.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

func newValidationError(violations []validation.Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
