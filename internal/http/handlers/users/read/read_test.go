package read

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-service/internal/models"
	"github.com/magabrotheeeer/profile-service/internal/services/users"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetUser(ctx context.Context, id string) (*models.PublicUser, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	const id = "65f1c2a9e4b0a1b2c3d4e5f6"

	tests := []struct {
		name        string
		mockResp    *models.PublicUser
		mockErr     error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "found",
			mockResp:   &models.PublicUser{ID: id, Name: "Alice", Email: "a@b.com"},
			wantStatus: http.StatusOK,
		},
		{
			name:        "not found",
			mockErr:     users.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("GetUser", mock.Anything, id).Return(tt.mockResp, tt.mockErr).Once()
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, got["message"])
			} else {
				assert.Equal(t, id, got["id"])
				assert.Equal(t, "Alice", got["name"])
			}
			svc.AssertExpectations(t)
		})
	}
}
