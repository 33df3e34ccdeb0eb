package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	customjwt "github.com/magabrotheeeer/catering-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/catering-backend/internal/lib/password"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/auth"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) SetUserActive(ctx context.Context, uid string, active bool) error {
	args := m.Called(ctx, uid, active)
	return args.Error(0)
}

func (m *UserRepoMock) SetUserAdmin(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateUserFullName(ctx context.Context, uid, fullName string) error {
	args := m.Called(ctx, uid, fullName)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID string, ttl time.Duration) (string, error) {
	args := m.Called(userUID, ttl)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.Claims), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		setupMocks func(r *UserRepoMock)
		wantErr    bool
		wantField  string
	}{
		{
			name: "successful registration",
			req: models.RegisterRequest{
				FullName: "Jane Doe",
				Email:    "jane@example.com",
				Password: "Str0ngPass!",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "jane@example.com" &&
						user.FullName == "Jane Doe" &&
						user.PasswordHash != "" &&
						user.IsActive &&
						!user.IsAdmin
				})).Return("some-uuid-string", nil).Once()
				r.On("GetUser", mock.Anything, "some-uuid-string").
					Return(&models.User{UID: "some-uuid-string", Email: "jane@example.com", FullName: "Jane Doe", IsActive: true}, nil).Once()
			},
			wantErr: false,
		},
		{
			name: "weak password is rejected",
			req: models.RegisterRequest{
				FullName: "Jane Doe",
				Email:    "jane@example.com",
				Password: "password",
			},
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    true,
			wantField:  "password",
		},
		{
			name: "invalid full name is rejected",
			req: models.RegisterRequest{
				FullName: "J",
				Email:    "jane@example.com",
				Password: "Str0ngPass!",
			},
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    true,
			wantField:  "full_name",
		},
		{
			name: "duplicate email",
			req: models.RegisterRequest{
				FullName: "Jane Doe",
				Email:    "jane@example.com",
				Password: "Str0ngPass!",
			},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("", errs.ErrConflict).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			svc := auth.New(repo, new(JwtMakerMock), time.Minute, nil, discardLogger())
			user, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantField != "" {
					verr, ok := errs.IsValidation(err)
					require.True(t, ok)
					assert.Equal(t, tt.wantField, verr.Field)
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jane@example.com", user.Email)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Register_HashIsNotPlaintext(t *testing.T) {
	repo := new(UserRepoMock)
	var captured models.User
	repo.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(models.User) }).
		Return("uid-1", nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1"}, nil).Once()

	svc := auth.New(repo, new(JwtMakerMock), time.Minute, nil, discardLogger())
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ngPass!", captured.PasswordHash)
	assert.NoError(t, password.CompareHash(captured.PasswordHash, "Str0ngPass!"))
}

func TestService_Login(t *testing.T) {
	hashed, err := password.GetHash("Str0ngPass!")
	require.NoError(t, err)

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "Str0ngPass!",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{UID: "uid-1", Email: "jane@example.com", PasswordHash: hashed, IsActive: true}, nil).Once()
				j.On("GenerateToken", "uid-1", 30*time.Minute).Return("token-1", nil).Once()
			},
			wantToken: "token-1",
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "Str0ngPass!",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: errs.ErrUnauthenticated,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "WrongPass1!",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{UID: "uid-1", PasswordHash: hashed, IsActive: true}, nil).Once()
			},
			wantErr: errs.ErrUnauthenticated,
		},
		{
			name:     "deactivated account",
			email:    "jane@example.com",
			password: "Str0ngPass!",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{UID: "uid-1", PasswordHash: hashed, IsActive: false}, nil).Once()
			},
			wantErr: errs.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := auth.New(repo, maker, 30*time.Minute, nil, discardLogger())
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, "uid-1", user.UID)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestService_Login_StorageFailureIsNotUnauthenticated(t *testing.T) {
	repo := new(UserRepoMock)
	maker := new(JwtMakerMock)
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").
		Return(nil, errors.New("connection refused")).Once()

	svc := auth.New(repo, maker, 30*time.Minute, nil, discardLogger())
	_, _, err := svc.Login(context.Background(), "jane@example.com", "Str0ngPass!")

	require.Error(t, err)
	// Сбой хранилища не должен выглядеть как неверные учетные данные
	assert.NotErrorIs(t, err, errs.ErrUnauthenticated)
	repo.AssertExpectations(t)
}

func TestService_Authenticate(t *testing.T) {
	claims := &customjwt.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "uid-1"}}

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "valid token resolves user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "token-1").Return(claims, nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").
					Return(&models.User{UID: "uid-1", IsActive: true}, nil).Once()
			},
		},
		{
			name: "bad token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "token-1").Return(nil, errors.New("token is invalid")).Once()
			},
			wantErr: errs.ErrUnauthenticated,
		},
		{
			name: "token for deleted user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "token-1").Return(claims, nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: errs.ErrUnauthenticated,
		},
		{
			name: "token for deactivated user",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "token-1").Return(claims, nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").
					Return(&models.User{UID: "uid-1", IsActive: false}, nil).Once()
			},
			wantErr: errs.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			tt.setupMocks(repo, maker)

			svc := auth.New(repo, maker, time.Minute, nil, discardLogger())
			user, err := svc.Authenticate(context.Background(), "token-1")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "uid-1", user.UID)
			}
		})
	}
}

func TestService_RequireAdmin(t *testing.T) {
	svc := auth.New(new(UserRepoMock), new(JwtMakerMock), time.Minute, nil, discardLogger())

	assert.NoError(t, svc.RequireAdmin(&models.User{IsAdmin: true}))
	assert.ErrorIs(t, svc.RequireAdmin(&models.User{IsAdmin: false}), errs.ErrForbidden)
	assert.ErrorIs(t, svc.RequireAdmin(nil), errs.ErrForbidden)
}

func TestService_Authenticate_StorageFailureIsNotUnauthenticated(t *testing.T) {
	claims := &customjwt.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "uid-1"}}

	repo := new(UserRepoMock)
	maker := new(JwtMakerMock)
	maker.On("ParseToken", "token-1").Return(claims, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").
		Return(nil, errors.New("connection refused")).Once()

	svc := auth.New(repo, maker, time.Minute, nil, discardLogger())
	_, err := svc.Authenticate(context.Background(), "token-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrUnauthenticated)
	repo.AssertExpectations(t)
}
