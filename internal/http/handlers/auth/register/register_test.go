package register

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"full_name":"Jane Doe","email":"jane@example.com","password":"Str0ngPass!"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(&models.User{UID: "uid-1", Email: "jane@example.com", FullName: "Jane Doe"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"jane@example.com"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "невалидный email",
			body:           `{"full_name":"Jane Doe","email":"not-an-email","password":"Str0ngPass!"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "повторный email",
			body: `{"full_name":"Jane Doe","email":"jane@example.com","password":"Str0ngPass!"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, errs.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"already exists"`,
		},
		{
			name: "слабый пароль",
			body: `{"full_name":"Jane Doe","email":"jane@example.com","password":"password1!A"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, errs.Validation("password", "must be stronger"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"field password: must be stronger"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
