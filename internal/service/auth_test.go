package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"surfboard-marketplace-backend/internal/domain"
)

func newAuthTestService() (*authService, *MockUserRepo, *MockTokenManager) {
	users := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := NewAuthService(users, tokens).(*authService)
	svc.cost = bcrypt.MinCost
	return svc, users, tokens
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	in := RegisterInput{Name: "Kai", Email: "kai@example.com", Password: "longenough"}

	t.Run("Success", func(t *testing.T) {
		svc, users, _ := newAuthTestService()
		users.On("GetByEmail", mock.Anything, "kai@example.com").Return(nil, domain.ErrNotFound)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		u, err := svc.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleUser, u.Role)
		assert.NotEqual(t, in.Password, u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)))
	})

	t.Run("EmailTaken", func(t *testing.T) {
		svc, users, _ := newAuthTestService()
		users.On("GetByEmail", mock.Anything, "kai@example.com").Return(&domain.User{ID: 1}, nil)

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("AdminRoleRejected", func(t *testing.T) {
		svc, _, _ := newAuthTestService()
		admin := in
		admin.Role = domain.UserRoleAdmin
		_, err := svc.Register(ctx, admin)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc, _, _ := newAuthTestService()
		short := in
		short.Password = "abc"
		_, err := svc.Register(ctx, short)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("MultibytePasswordOverBcryptLimit", func(t *testing.T) {
		svc, users, _ := newAuthTestService()
		long := in
		long.Password = strings.Repeat("é", 40)
		_, err := svc.Register(ctx, long)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
		assert.NotErrorIs(t, err, domain.ErrInternal)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("BadEmail", func(t *testing.T) {
		svc, _, _ := newAuthTestService()
		bad := in
		bad.Email = "not-an-email"
		_, err := svc.Register(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 7, Email: "kai@example.com", PasswordHash: string(hash), Role: domain.UserRolePartner}

	t.Run("Success", func(t *testing.T) {
		svc, users, tokens := newAuthTestService()
		expires := time.Now().Add(time.Hour)
		users.On("GetByEmail", mock.Anything, "kai@example.com").Return(user, nil)
		tokens.On("GenerateAccessToken", domain.Principal{ID: 7, Email: "kai@example.com", Role: domain.UserRolePartner}).
			Return("signed", expires, nil)

		res, err := svc.Login(ctx, "kai@example.com", "longenough")
		require.NoError(t, err)
		assert.Equal(t, "signed", res.Token)
		assert.Equal(t, expires, res.ExpiresAt)
		assert.Equal(t, user, res.User)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, users, tokens := newAuthTestService()
		users.On("GetByEmail", mock.Anything, "kai@example.com").Return(user, nil)

		_, err := svc.Login(ctx, "kai@example.com", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		svc, users, _ := newAuthTestService()
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "longenough")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	svc, users, _ := newAuthTestService()
	users.On("GetByID", mock.Anything, int32(7)).Return(nil, domain.ErrNotFound)

	_, err := svc.Me(context.Background(), domain.Principal{ID: 7})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
