// Package login реализует HTTP-обработчик входа по email и паролю.
//
// При успешной проверке учётных данных возвращается JWT. Неизвестный email
// и неверный пароль неразличимы для клиента: оба дают 401 с одним сообщением.
package login

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

// MessageSuccess — сообщение в ответе на успешный вход.
const MessageSuccess = "login successful"

// Service описывает бизнес-логику аутентификации.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис пользователей
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Проверяет email и пароль, возвращает JWT.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} response.LoginResponse
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		response.ServiceError(w, r, log, err)
		return
	}

	log.Info("login success")
	response.JSON(w, r, http.StatusOK, response.LoginResponse{
		Message: MessageSuccess,
		Token:   token,
	})
}
