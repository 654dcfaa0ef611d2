// Package health отдаёт состояние сервиса и его зависимостей.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/magabrotheeeer/profile-service/internal/http/response"
	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
)

const checkTimeout = 2 * time.Second

// Pinger — зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status — тело ответа health-check.
type Status struct {
	Status string   `json:"status" example:"ok"`
	Failed []string `json:"failed,omitempty"`
}

// Handler проверяет зависимости по имени.
type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создает Handler. checks — имя зависимости и её проверка.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Health-check
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	var failed []string
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.log.Warn("dependency is unavailable", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			failed = append(failed, name)
		}
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		response.JSON(w, r, http.StatusServiceUnavailable, Status{Status: "unavailable", Failed: failed})
		return
	}
	response.JSON(w, r, http.StatusOK, Status{Status: "ok"})
}
