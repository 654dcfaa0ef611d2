// Package create реализует HTTP-обработчик регистрации пользователя.
//
// Тело запроса декодируется в models.CreateUserRequest и передаётся сервису,
// который валидирует поля, проверяет уникальность email и телефона и сохраняет
// пользователя. В ответе возвращается созданный пользователь без пароля.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-service/internal/http/response"
	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
	"github.com/magabrotheeeer/profile-service/internal/models"
)

// Service описывает бизнес-логику создания пользователя.
type Service interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.PublicUser, error)
}

// Handler обрабатывает запросы на создание пользователя.
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
// @Summary Создание пользователя
// @Description Регистрирует пользователя. Email и телефон должны быть уникальны.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Данные пользователя"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации или дубликат"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		response.ServiceError(w, r, log, err)
		return
	}

	log.Info("user created", slog.String("id", user.ID))
	response.JSON(w, r, http.StatusCreated, user)
}
