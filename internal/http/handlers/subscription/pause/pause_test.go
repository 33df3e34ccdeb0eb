package pause

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/catering-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// MockService реализует интерфейс pause.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Pause(ctx context.Context, requester *models.User, id int, start, end time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, requester, id, start, end)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPauseHandler(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	owner := &models.User{UID: "uid-1", Email: "jane@example.com", IsActive: true}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная пауза",
			id:   "7",
			body: `{"pause_start_date":"2025-07-01","pause_end_date":"2025-07-10"}`,
			setupMock: func(m *MockService) {
				m.On("Pause", mock.Anything, owner, 7, start, end).
					Return(&models.Subscription{ID: 7, IsActive: true, PauseStartDate: &start, PauseEndDate: &end}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "подписка уже на паузе",
			id:   "7",
			body: `{"pause_start_date":"2025-07-01","pause_end_date":"2025-07-10"}`,
			setupMock: func(m *MockService) {
				m.On("Pause", mock.Anything, owner, 7, start, end).
					Return(nil, errs.ErrInvalidState)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"operation is not allowed in the current state"`,
		},
		{
			name: "дата начала в прошлом",
			id:   "7",
			body: `{"pause_start_date":"2025-07-01","pause_end_date":"2025-07-10"}`,
			setupMock: func(m *MockService) {
				m.On("Pause", mock.Anything, owner, 7, start, end).
					Return(nil, errs.Validation("pause_start_date", "cannot be in the past"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"field pause_start_date: cannot be in the past"`,
		},
		{
			name:           "неверный формат даты",
			id:             "7",
			body:           `{"pause_start_date":"01.07.2025","pause_end_date":"2025-07-10"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "отсутствует дата окончания",
			id:             "7",
			body:           `{"pause_start_date":"2025-07-01"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PauseEndDate is a required field`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{"pause_start_date":"2025-07-01","pause_end_date":"2025-07-10"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid subscription id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/subscriptions/"+tt.id+"/pause", strings.NewReader(tt.body))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserKey, owner)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
