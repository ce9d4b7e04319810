package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/models"
	"github.com/saqerservice/saqer-admin-api/internal/repository"
)

func newAuthServiceForTest(t *testing.T) AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:authsvc?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StaffUser{}))
	require.NoError(t, db.Exec("DELETE FROM staff_users").Error)

	repo := repository.NewStaffRepository(db)
	cfg := AuthConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}

	return NewAuthService(repo, cfg, validator.New(validator.WithRequiredStructEnabled()), nil, zerolog.Nop())
}

func TestAuthLoginWithSeededAdmin(t *testing.T) {
	svc := newAuthServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@saqer.example", "super-secret-pass"))

	result, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "admin@saqer.example",
		Password: "super-secret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)
	require.Equal(t, models.StaffRoleAdmin, result.Staff.Role)
	require.NotNil(t, result.Staff.LastLoginAt)
}

func TestAuthLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@saqer.example", "super-secret-pass"))

	_, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "admin@saqer.example",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "nobody@saqer.example",
		Password: "super-secret-pass",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefreshIssuesNewTokenPair(t *testing.T) {
	svc := newAuthServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@saqer.example", "super-secret-pass"))

	login, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "admin@saqer.example",
		Password: "super-secret-pass",
	})
	require.NoError(t, err)

	tokens, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: "not-a-token"})
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthCreateStaffRejectsDuplicates(t *testing.T) {
	svc := newAuthServiceForTest(t)
	ctx := context.Background()

	payload := dto.StaffCreateRequest{
		Name:     "Dispatcher",
		Email:    "ops@saqer.example",
		Password: "operator-pass",
		Role:     models.StaffRoleOperator,
	}

	created, err := svc.CreateStaff(ctx, payload, ActivityActor{ID: 1, Role: models.StaffRoleAdmin})
	require.NoError(t, err)
	require.Equal(t, models.StaffRoleOperator, created.Role)

	_, err = svc.CreateStaff(ctx, payload, ActivityActor{ID: 1, Role: models.StaffRoleAdmin})
	require.ErrorIs(t, err, ErrStaffExists)
}

func TestAuthEnsureDefaultAdminIsIdempotent(t *testing.T) {
	svc := newAuthServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@saqer.example", "super-secret-pass"))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "other@saqer.example", "another-pass"))

	_, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "other@saqer.example",
		Password: "another-pass",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
