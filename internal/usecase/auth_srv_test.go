package usecase

import (
	"context"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func TestRegister_Success(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "rider@example.com" &&
			u.Role == entity.RoleUser &&
			u.PasswordHash != "secret123"
	})).Return(nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "rider@example.com",
		Password: "secret123",
		Name:     "Rider One",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "rider@example.com", resp.User.Email)
	assert.Equal(t, "user", string(resp.User.Role))
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&entity.User{
		Base:  entity.Base{ID: uuid.New()},
		Email: "taken@example.com",
	}, nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret123",
		Name:     "Second Cust",
	})

	assert.ErrorIs(t, err, ErrConflict)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Email:        "rider@example.com",
		PasswordHash: hash,
		Name:         "Rider One",
		Role:         entity.RoleUser,
	}

	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(user, nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "rider@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ParseToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(&entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Email:        "rider@example.com",
		PasswordHash: hash,
	}, nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	_, errUnknown := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	_, errWrongPw := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "rider@example.com",
		Password: "wrongpass",
	})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestGetMe_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	_, err := svc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_RedactsPasswordHash(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindAll", mock.Anything).Return([]*entity.User{
		{
			Base:         entity.Base{ID: uuid.New()},
			Email:        "rider@example.com",
			PasswordHash: "$2a$10$hash",
			Name:         "Rider One",
			Role:         entity.RoleUser,
		},
	}, nil)

	svc := NewAuthService(&repository.Repository{User: users}, testConfig(), zap.NewNop())

	resp, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "rider@example.com", resp[0].Email)
}
