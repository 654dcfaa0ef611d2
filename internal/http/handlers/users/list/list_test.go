package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-service/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.PublicUser)
	return list, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		mockResp   []models.PublicUser
		mockErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "two users",
			mockResp:   []models.PublicUser{{ID: "1", Name: "A", Email: "a@b.com"}, {ID: "2", Name: "B", Email: "b@b.com"}},
			wantStatus: http.StatusOK,
			wantBody:   `[{"id":"1","name":"A","email":"a@b.com"},{"id":"2","name":"B","email":"b@b.com"}]`,
		},
		{
			name:       "empty list is an array",
			mockResp:   nil,
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "service error",
			mockErr:    errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("ListUsers", mock.Anything).Return(tt.mockResp, tt.mockErr).Once()
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
