package testimonial_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
	"github.com/magabrotheeeer/catering-backend/internal/services/testimonial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListTestimonials(ctx context.Context, approvedOnly bool) ([]*models.Testimonial, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Testimonial), args.Error(1)
}

func (m *RepoMock) ApproveTestimonial(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RepoMock) RemoveTestimonial(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       models.CreateTestimonialRequest
		wantField string
	}{
		{
			name: "successful creation awaits moderation",
			req: models.CreateTestimonialRequest{
				Name:    "Jane Doe",
				Message: "The food was excellent and always on time.",
				Rating:  5,
			},
		},
		{
			name: "rating out of range",
			req: models.CreateTestimonialRequest{
				Name:    "Jane Doe",
				Message: "The food was excellent and always on time.",
				Rating:  6,
			},
			wantField: "rating",
		},
		{
			name: "message too short",
			req: models.CreateTestimonialRequest{
				Name:    "Jane Doe",
				Message: "short",
				Rating:  4,
			},
			wantField: "message",
		},
		{
			name: "message too long",
			req: models.CreateTestimonialRequest{
				Name:    "Jane Doe",
				Message: strings.Repeat("a", 1001),
				Rating:  4,
			},
			wantField: "message",
		},
		{
			name: "invalid customer name",
			req: models.CreateTestimonialRequest{
				Name:    "J@ne<script>",
				Message: "The food was excellent and always on time.",
				Rating:  4,
			},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantField == "" {
				repo.On("CreateTestimonial", mock.Anything, mock.MatchedBy(func(tm models.Testimonial) bool {
					return tm.UserUID == "uid-1" && !tm.IsApproved &&
						tm.Name == tt.req.Name && tm.Rating == tt.req.Rating
				})).Return(11, nil).Once()
			}

			svc := testimonial.New(repo, discardLogger())
			id, err := svc.Create(context.Background(), "uid-1", tt.req)

			if tt.wantField != "" {
				require.Error(t, err)
				verr, ok := errs.IsValidation(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, verr.Field)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 11, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create_SanitizesMessage(t *testing.T) {
	repo := new(RepoMock)
	var captured models.Testimonial
	repo.On("CreateTestimonial", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(models.Testimonial) }).
		Return(1, nil).Once()

	svc := testimonial.New(repo, discardLogger())
	_, err := svc.Create(context.Background(), "uid-1", models.CreateTestimonialRequest{
		Name:    "Jane Doe",
		Message: "Great food <script>alert(1)</script> and friendly couriers!",
		Rating:  5,
	})
	require.NoError(t, err)
	assert.NotContains(t, captured.Message, "<script>")
	assert.Contains(t, captured.Message, "&lt;script&gt;")
}

func TestService_Lists(t *testing.T) {
	approved := []*models.Testimonial{{ID: 1, IsApproved: true}}
	all := []*models.Testimonial{{ID: 1, IsApproved: true}, {ID: 2}}

	repo := new(RepoMock)
	repo.On("ListTestimonials", mock.Anything, true).Return(approved, nil).Once()
	repo.On("ListTestimonials", mock.Anything, false).Return(all, nil).Once()

	svc := testimonial.New(repo, discardLogger())

	got, err := svc.ListApproved(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestService_ApproveAndRemove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ApproveTestimonial", mock.Anything, 3).Return(nil).Once()
	repo.On("RemoveTestimonial", mock.Anything, 404).Return(errs.ErrNotFound).Once()

	svc := testimonial.New(repo, discardLogger())

	assert.NoError(t, svc.Approve(context.Background(), 3))
	assert.ErrorIs(t, svc.Remove(context.Background(), 404), errs.ErrNotFound)
	repo.AssertExpectations(t)
}
