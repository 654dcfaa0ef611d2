// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков.
//
// Ошибки уходят клиенту в виде {"message": ...}, ошибки валидации
// дополнительно несут список нарушений по полям.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
	"github.com/magabrotheeeer/profile-service/internal/lib/validation"
	"github.com/magabrotheeeer/profile-service/internal/services/users"
)

// MessageValidation — текст сообщения для ответа с нарушениями валидации.
const MessageValidation = "validation error"

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Message string `json:"message" example:"user not found"`
}

// ValidationErrorResponse — тело ответа с ошибками валидации.
type ValidationErrorResponse struct {
	Message string                 `json:"message" example:"validation error"`
	Errors  []validation.Violation `json:"errors"`
}

// LoginResponse — тело успешного ответа на вход.
type LoginResponse struct {
	Message string `json:"message" example:"login successful"`
	Token   string `json:"token"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// ValidationError формирует ответ со всеми нарушениями.
func ValidationError(violations []validation.Violation) ValidationErrorResponse {
	if violations == nil {
		violations = []validation.Violation{}
	}
	return ValidationErrorResponse{
		Message: MessageValidation,
		Errors:  violations,
	}
}

// JSON пишет тело v с кодом статуса.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// ServiceError переводит ошибку сервиса пользователей в HTTP-ответ.
// Неизвестные ошибки отдаются как 500 без подробностей.
func ServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *users.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("validation failed", sl.Err(err))
		JSON(w, r, http.StatusBadRequest, ValidationError(verr.Violations))
	case errors.Is(err, users.ErrDuplicate):
		log.Info("duplicate user", sl.Err(err))
		JSON(w, r, http.StatusBadRequest, Error(users.ErrDuplicate.Error()))
	case errors.Is(err, users.ErrNotFound):
		log.Info("user not found")
		JSON(w, r, http.StatusNotFound, Error(users.ErrNotFound.Error()))
	case errors.Is(err, users.ErrInvalidCredentials):
		log.Info("invalid credentials")
		JSON(w, r, http.StatusUnauthorized, Error(users.ErrInvalidCredentials.Error()))
	default:
		log.Error("request failed", sl.Err(err))
		JSON(w, r, http.StatusInternalServerError, Error(users.ErrInternal.Error()))
	}
}
