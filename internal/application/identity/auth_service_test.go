package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/auth"
	"github.com/finflow/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "finflow-test",
	})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active user with hashed password", func(t *testing.T) {
		users := new(MockUserRepo)
		audit := &fakeAuditRecorder{}
		service := NewAuthService(users, newTestJWTService(), audit, zaptest.NewLogger(t))

		var saved *identity.User
		users.On("ExistsByEmail", ctx, "maria@example.com").Return(false, nil)
		users.On("Save", ctx, mock.AnythingOfType("*identity.User")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*identity.User) }).
			Return(nil)

		resp, err := service.Signup(ctx, SignupRequest{
			Email:    "maria@example.com",
			FullName: "Maria Santos",
			Password: "s3cret-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", resp.Email)
		assert.True(t, resp.Active)

		require.NotNil(t, saved)
		assert.NotEqual(t, "s3cret-password", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-password")))
		assert.Equal(t, []string{AuditActionUserSignup}, audit.actions())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		users := new(MockUserRepo)
		service := NewAuthService(users, newTestJWTService(), nil, zaptest.NewLogger(t))

		users.On("ExistsByEmail", ctx, "maria@example.com").Return(true, nil)

		_, err := service.Signup(ctx, SignupRequest{
			Email:    "maria@example.com",
			FullName: "Maria Santos",
			Password: "s3cret-password",
		})
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	makeUser := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("carlos@example.com", "Carlos Lima", string(hash))
		require.NoError(t, err)
		return user
	}

	t.Run("issues a token without any tenant claim", func(t *testing.T) {
		users := new(MockUserRepo)
		jwtService := newTestJWTService()
		service := NewAuthService(users, jwtService, nil, zaptest.NewLogger(t))
		user := makeUser(t)

		users.On("FindByEmail", ctx, "carlos@example.com").Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "carlos@example.com", Password: "correct-password"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		require.NotNil(t, user.LastLoginAt)

		claims, err := jwtService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		service := NewAuthService(users, newTestJWTService(), nil, zaptest.NewLogger(t))
		user := makeUser(t)

		users.On("FindByEmail", ctx, "carlos@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "carlos@example.com", Password: "wrong"})
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("unknown email gets the same error as wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		service := NewAuthService(users, newTestJWTService(), nil, zaptest.NewLogger(t))

		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		users := new(MockUserRepo)
		service := NewAuthService(users, newTestJWTService(), nil, zaptest.NewLogger(t))
		user := makeUser(t)
		user.Deactivate()

		users.On("FindByEmail", ctx, "carlos@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "carlos@example.com", Password: "correct-password"})
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", de.Code)
	})
}
