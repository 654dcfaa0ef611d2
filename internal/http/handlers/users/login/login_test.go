package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-service/internal/models"
	"github.com/magabrotheeeer/profile-service/internal/services/users"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		requestBody any
		mockToken   string
		mockErr     error
		callService bool
		wantStatus  int
		wantMessage string
		wantToken   string
	}{
		{
			name:        "valid login",
			requestBody: models.LoginRequest{Email: "a@b.com", Password: "Abcd1234!"},
			mockToken:   "tok",
			callService: true,
			wantStatus:  http.StatusOK,
			wantMessage: MessageSuccess,
			wantToken:   "tok",
		},
		{
			name:        "invalid json body",
			requestBody: "not a json",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request body",
		},
		{
			name:        "wrong password",
			requestBody: models.LoginRequest{Email: "a@b.com", Password: "wrong"},
			mockErr:     users.ErrInvalidCredentials,
			callService: true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callService {
				svc.On("Login", mock.Anything, tt.requestBody.(models.LoginRequest)).
					Return(tt.mockToken, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svc)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got["message"])
			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, got["token"])
			} else {
				assert.Nil(t, got["token"])
			}
			svc.AssertExpectations(t)
		})
	}
}
