package mealplan_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
	"github.com/magabrotheeeer/catering-backend/internal/services/mealplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateMealPlan(ctx context.Context, mp models.MealPlan) (int, error) {
	args := m.Called(ctx, mp)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ReadMealPlan(ctx context.Context, id int) (*models.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *RepoMock) ListMealPlans(ctx context.Context, activeOnly bool) ([]*models.MealPlan, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MealPlan), args.Error(1)
}

func (m *RepoMock) UpdateMealPlan(ctx context.Context, id int, mp models.MealPlan) error {
	args := m.Called(ctx, id, mp)
	return args.Error(0)
}

func (m *RepoMock) DeactivateMealPlan(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validRequest() models.MealPlanRequest {
	return models.MealPlanRequest{
		Name:         "Diet Plan",
		Description:  "Low-calorie meals for a balanced diet.",
		PricePerMeal: 30000,
		PlanType:     "diet",
		Features:     []string{"Fresh vegetables", "Portion control"},
	}
}

func TestService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateMealPlan", mock.Anything, mock.MatchedBy(func(mp models.MealPlan) bool {
			return mp.Name == "Diet Plan" && mp.PlanType == "diet" && mp.IsActive
		})).Return(5, nil).Once()
		repo.On("ReadMealPlan", mock.Anything, 5).
			Return(&models.MealPlan{ID: 5, Name: "Diet Plan", IsActive: true}, nil).Once()

		svc := mealplan.New(repo, discardLogger())
		mp, err := svc.Create(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, 5, mp.ID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown plan type", func(t *testing.T) {
		req := validRequest()
		req.PlanType = "keto"

		svc := mealplan.New(new(RepoMock), discardLogger())
		_, err := svc.Create(context.Background(), req)

		verr, ok := errs.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "plan_type", verr.Field)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateMealPlan", mock.Anything, mock.Anything).
			Return(0, errs.ErrConflict).Once()

		svc := mealplan.New(repo, discardLogger())
		_, err := svc.Create(context.Background(), validRequest())

		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestService_Get(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ReadMealPlan", mock.Anything, 5).
		Return(&models.MealPlan{ID: 5}, nil).Once()
	repo.On("ReadMealPlan", mock.Anything, 404).
		Return(nil, errs.ErrNotFound).Once()

	svc := mealplan.New(repo, discardLogger())

	mp, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, mp.ID)

	_, err = svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_Lists(t *testing.T) {
	active := []*models.MealPlan{{ID: 1, IsActive: true}}
	all := []*models.MealPlan{{ID: 1, IsActive: true}, {ID: 2}}

	repo := new(RepoMock)
	repo.On("ListMealPlans", mock.Anything, true).Return(active, nil).Once()
	repo.On("ListMealPlans", mock.Anything, false).Return(all, nil).Once()

	svc := mealplan.New(repo, discardLogger())

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestService_UpdateAndDeactivate(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateMealPlan", mock.Anything, 5, mock.Anything).Return(nil).Once()
	repo.On("ReadMealPlan", mock.Anything, 5).
		Return(&models.MealPlan{ID: 5, Name: "Diet Plan"}, nil).Once()
	repo.On("DeactivateMealPlan", mock.Anything, 404).Return(errs.ErrNotFound).Once()

	svc := mealplan.New(repo, discardLogger())

	mp, err := svc.Update(context.Background(), 5, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 5, mp.ID)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 404), errs.ErrNotFound)
	repo.AssertExpectations(t)
}
