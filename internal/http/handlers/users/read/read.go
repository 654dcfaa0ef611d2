// Package read реализует HTTP-обработчик получения пользователя по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-service/internal/http/response"
	"github.com/magabrotheeeer/profile-service/internal/models"
)

// Service описывает бизнес-логику чтения пользователя.
type Service interface {
	GetUser(ctx context.Context, id string) (*models.PublicUser, error)
}

// Handler обрабатывает запросы на получение пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получение пользователя
// @Description Возвращает пользователя по ID. Маршрут может требовать Bearer-токен.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя (24 hex)"
// @Success 200 {object} models.PublicUser
// @Failure 400 {object} response.ValidationErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Недействительный токен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		response.ServiceError(w, r, log, err)
		return
	}

	log.Debug("user read", slog.String("id", user.ID))
	response.JSON(w, r, http.StatusOK, user)
}
