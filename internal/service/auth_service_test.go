package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coursehub/internal/auth"
	apperrors "coursehub/internal/errors"
	"coursehub/internal/model"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	s, err := auth.NewJWTService("test-secret-key", time.Hour)
	require.NoError(t, err)
	return s
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	user := &model.User{
		ID:           uuid.New(),
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hashedPassword),
		Role:         model.RoleStudent,
	}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMock   func(*MockUserRepository)
		expectedErr error
	}{
		{
			name:     "successful login",
			email:    user.Email,
			password: password,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, user.Email).Return(user, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: password,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    user.Email,
			password: "wrongpassword",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, user.Email).Return(user, nil)
			},
			expectedErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			jwtService := newTestJWTService(t)
			svc := NewAuthService(repo, jwtService)

			token, got, err := svc.Login(ctx, tt.email, tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, token)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				id, err := claims.UserID()
				require.NoError(t, err)
				assert.Equal(t, user.ID, id)
				assert.Equal(t, model.RoleStudent, claims.Role)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginRepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, errors.New("connection refused"))

	svc := NewAuthService(repo, newTestJWTService(t))
	_, _, err := svc.Login(ctx, "ana@example.com", "password123")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		role        model.Role
		setupMock   func(*MockUserRepository)
		expectedErr error
	}{
		{
			name: "successful registration",
			role: model.RoleManager,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "empty role defaults to student",
			role: "",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleStudent
				})).Return(nil)
			},
		},
		{
			name: "email already taken",
			role: model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, "ana@example.com").Return(&model.User{Email: "ana@example.com"}, nil)
			},
			expectedErr: apperrors.ErrUserAlreadyExists,
		},
		{
			name: "duplicate key on insert",
			role: model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", ctx, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedErr: apperrors.ErrUserAlreadyExists,
		},
		{
			name:        "unknown role",
			role:        model.Role("admin"),
			setupMock:   func(m *MockUserRepository) {},
			expectedErr: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewAuthService(repo, newTestJWTService(t))

			user, err := svc.Register(ctx, "Ana", "ana@example.com", "password123", tt.role)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginComparesHashForUnknownEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	var compared [][]byte
	svc := NewAuthService(repo, newTestJWTService(t)).(*authService)
	svc.comparePassword = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, _, err := svc.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.Len(t, compared, 1)
	assert.Equal(t, dummyHash, compared[0])
	cost, err := bcrypt.Cost(dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}
