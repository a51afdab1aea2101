package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/auth"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/jwt"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) AdjustUsedLeaveDays(ctx context.Context, id string, delta float64) (user.LeaveBalance, error) {
	panic("not used")
}

func (f *fakeUserRepo) SetLeaveAllotment(ctx context.Context, id string, totalDays float64) (user.LeaveBalance, error) {
	panic("not used")
}

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *jwt.JWTService) {
	t.Helper()
	// MinCost keeps the suite fast
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	repo := &fakeUserRepo{users: []user.User{
		{ID: "u-1", Email: "pastor@sarang.org", Name: "김목사", PasswordHash: &hashed, Role: user.RoleApprover, IsActive: true,
			LeaveBalance: user.LeaveBalance{TotalDays: 15, UsedDays: 2.5}},
		{ID: "u-2", Email: "former@sarang.org", Name: "이전도사", PasswordHash: &hashed, Role: user.RoleStaff, IsActive: false},
		{ID: "u-3", Email: "nopass@sarang.org", Name: "박간사", Role: user.RoleStaff, IsActive: true},
	}}
	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return NewAuthService(repo, jwtService).(*AuthServiceImpl), jwtService
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService(t)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "  Pastor@Sarang.org ", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())

		token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
		require.NoError(t, err)
		claims, err := token.AsMap(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims["user_id"])
		assert.Equal(t, "approver", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "pastor@sarang.org", Password: "wrongpassword"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@sarang.org", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("account without password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nopass@sarang.org", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "former@sarang.org", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrUserInactive)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "not-an-email", Password: "short"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "email")
		assert.Contains(t, verrs.ToMap(), "password")
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "pastor@sarang.org", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, jwtService.IsTokenRevoked(resp.AccessToken))

	require.NoError(t, svc.Logout(ctx, resp.AccessToken, resp.AccessTokenExpiresIn))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(ctx, "", 0), auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	me, err := svc.Me(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "김목사", me.Name)
	assert.Equal(t, "approver", me.Role)
	assert.InDelta(t, 12.5, me.LeaveBalance.RemainingDays, 1e-9)

	_, err = svc.Me(ctx, "u-2")
	assert.ErrorIs(t, err, user.ErrUserInactive)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
