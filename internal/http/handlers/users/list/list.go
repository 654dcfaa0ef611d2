package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-service/internal/http/response"
	"github.com/magabrotheeeer/profile-service/internal/models"
)

// Service описывает бизнес-логику получения списка пользователей.
type Service interface {
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
}

// Handler отдаёт список всех пользователей.
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
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Success 200 {array} models.PublicUser
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		response.ServiceError(w, r, log, err)
		return
	}
	if users == nil {
		users = []models.PublicUser{}
	}

	log.Debug("users listed", slog.Int("count", len(users)))
	response.JSON(w, r, http.StatusOK, users)
}
