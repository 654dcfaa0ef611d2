// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware проверяет Bearer-токен в заголовке Authorization и кладёт
// идентификатор пользователя в контекст запроса. Отсутствующий или
// некорректно оформленный заголовок даёт 401, токен, не прошедший
// проверку, даёт 403.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-service/internal/http/response"
	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ идентификатора аутентифицированного пользователя в контексте.
const UserID Key = "userId"

// Сообщения ответов для отказов в доступе.
const (
	MessageMissingToken = "authorization token is missing"
	MessageInvalidToken = "invalid or expired token"
)

// Verifier проверяет токен и возвращает идентификатор пользователя.
type Verifier interface {
	VerifyToken(token string) (string, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(verifier Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or malformed authorization header")
				response.JSON(w, r, http.StatusUnauthorized, response.Error(MessageMissingToken))
				return
			}

			userID, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				log.Info("token rejected", sl.Err(err))
				response.JSON(w, r, http.StatusForbidden, response.Error(MessageInvalidToken))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает идентификатор пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
