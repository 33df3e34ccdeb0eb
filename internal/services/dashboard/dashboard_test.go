package dashboard_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/catering-backend/internal/services/dashboard"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CountSubscriptionsCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	args := m.Called(ctx, start, end)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountEffectivelyActive(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountPaused(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) SumActiveTotalPrice(ctx context.Context, today time.Time) (float64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(float64), args.Error(1)
}

func (m *RepoMock) CountReactivations(ctx context.Context, start, end time.Time) (int, error) {
	args := m.Called(ctx, start, end)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_Metrics(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name               string
		start, end         time.Time
		wantStart, wantEnd time.Time
	}{
		{
			name:      "explicit range",
			start:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "zero bounds default to current month",
			wantStart: firstOfMonth,
			wantEnd:   today,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("CountSubscriptionsCreatedBetween", mock.Anything, tt.wantStart, tt.wantEnd).Return(12, nil).Once()
			repo.On("CountEffectivelyActive", mock.Anything, today).Return(80, nil).Once()
			repo.On("CountPaused", mock.Anything, today).Return(5, nil).Once()
			repo.On("SumActiveTotalPrice", mock.Anything, today).Return(6450000.0, nil).Once()
			repo.On("CountReactivations", mock.Anything, tt.wantStart, tt.wantEnd).Return(3, nil).Once()

			svc := dashboard.NewWithClock(repo, discardLogger(), func() time.Time { return now })
			metrics, err := svc.Metrics(context.Background(), tt.start, tt.end)

			require.NoError(t, err)
			assert.Equal(t, 12, metrics.NewSubscriptions)
			assert.Equal(t, 80, metrics.ActiveSubscriptions)
			assert.Equal(t, 5, metrics.PausedSubscriptions)
			assert.InDelta(t, 6450000, metrics.MonthlyRecurringRevenue, 0.01)
			assert.Equal(t, 3, metrics.Reactivations)
			assert.Equal(t, tt.wantStart, metrics.DateRangeStart)
			assert.Equal(t, tt.wantEnd, metrics.DateRangeEnd)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Metrics_InvalidRange(t *testing.T) {
	svc := dashboard.New(new(RepoMock), discardLogger())

	_, err := svc.Metrics(context.Background(),
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	verr, ok := errs.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "start_date", verr.Field)
}
