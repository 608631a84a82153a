package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/config"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	pkgAuth "github.com/phan14/du-an-ss2/internal/pkg/auth"
	"github.com/phan14/du-an-ss2/internal/test"
)

func newAuthFixture(t *testing.T) (*AuthUseCase, *test.MemoryStore) {
	t.Helper()
	store := test.NewMemoryStore()
	require.NoError(t, store.Users().Upsert(context.Background(),
		model.User{Username: "lan", Name: "Lan", Role: model.UserRoleStaff, Password: "hash:may123"}))
	return NewAuthUseCase(store.Users(), test.HasherStub{}, test.StrategyStub{}), store
}

func TestAuthUseCaseLogin(t *testing.T) {
	uc, _ := newAuthFixture(t)

	usr, token, err := uc.Login(context.Background(), " lan ", "may123")
	require.NoError(t, err)
	assert.Equal(t, "lan", usr.Username)
	assert.Equal(t, "token:lan", token)

	cases := []struct {
		name, username, password string
	}{
		{"wrong password", "lan", "sai"},
		{"unknown user", "hoa", "may123"},
		{"empty username", " ", "may123"},
		{"empty password", "lan", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Login(context.Background(), tc.username, tc.password)
			require.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthUseCaseLoginPropagatesStoreError(t *testing.T) {
	uc, store := newAuthFixture(t)
	store.Err = errors.New("db down")

	_, _, err := uc.Login(context.Background(), "lan", "may123")
	require.EqualError(t, err, "db down")
}

func TestAuthUseCaseUserFromToken(t *testing.T) {
	uc, _ := newAuthFixture(t)

	usr, err := uc.UserFromToken(context.Background(), "token:lan")
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleStaff, usr.Role)

	_, err = uc.UserFromToken(context.Background(), "")
	require.ErrorIs(t, err, pkgAuth.ErrInvalidToken)

	_, err = uc.UserFromToken(context.Background(), "garbage")
	require.ErrorIs(t, err, pkgAuth.ErrInvalidToken)

	_, err = uc.UserFromToken(context.Background(), "token:deleted")
	require.ErrorIs(t, err, pkgAuth.ErrInvalidToken)
}

func TestAuthUseCaseSaveUser(t *testing.T) {
	uc, store := newAuthFixture(t)
	ctx := context.Background()

	_, err := uc.SaveUser(ctx, staff, model.User{Username: "hoa", Name: "Hoa", Role: model.UserRoleStaff, Password: "x"})
	require.ErrorIs(t, err, domainErrors.ErrForbidden)

	usr, err := uc.SaveUser(ctx, admin, model.User{Username: " hoa ", Name: "Hoa", Role: model.UserRoleStaff, Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "hoa", usr.Username)
	assert.Equal(t, "hash:x", usr.Password)

	usr, err = uc.SaveUser(ctx, admin, model.User{Username: "lan", Name: "Lan Nguyễn", Role: model.UserRoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "hash:may123", usr.Password, "an empty password keeps the stored one")
	stored, err := store.Users().Get(ctx, "lan")
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleAdmin, stored.Role)
	assert.Equal(t, "Lan Nguyễn", stored.Name)

	cases := []struct {
		name  string
		in    model.User
		field string
		cause error
	}{
		{"missing username", model.User{Name: "A", Role: model.UserRoleStaff, Password: "p"}, "username", domainErrors.ErrRequired},
		{"missing name", model.User{Username: "a", Role: model.UserRoleStaff, Password: "p"}, "name", domainErrors.ErrRequired},
		{"missing role", model.User{Username: "a", Name: "A", Password: "p"}, "role", domainErrors.ErrRequired},
		{"unknown role", model.User{Username: "a", Name: "A", Role: "OWNER", Password: "p"}, "role", domainErrors.ErrInvalidRole},
		{"new without password", model.User{Username: "a", Name: "A", Role: model.UserRoleStaff}, "password", domainErrors.ErrRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.SaveUser(ctx, admin, tc.in)
			var verr *domainErrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}

func TestAuthUseCaseDeleteUser(t *testing.T) {
	uc, _ := newAuthFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, uc.DeleteUser(ctx, staff, "lan"), domainErrors.ErrForbidden)
	require.ErrorIs(t, uc.DeleteUser(ctx, admin, "admin"), domainErrors.ErrSelfDelete)
	require.NoError(t, uc.DeleteUser(ctx, admin, "lan"))
	require.ErrorIs(t, uc.DeleteUser(ctx, admin, "lan"), domainErrors.ErrNotFound)
}

func TestAuthUseCaseBootstrap(t *testing.T) {
	f := newFixture(t)
	uc := NewAuthUseCase(f.store.Users(), test.HasherStub{}, test.StrategyStub{})
	ctx := context.Background()

	require.NoError(t, uc.Bootstrap(ctx, &config.Config{BootstrapAdminUser: "admin"}, f.logger))
	users, err := f.store.Users().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "no admin is created without a password")

	cfg := &config.Config{BootstrapAdminUser: "admin", BootstrapAdminPass: "khoidong"}
	require.NoError(t, uc.Bootstrap(ctx, cfg, f.logger))
	usr, err := f.store.Users().Get(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())
	assert.Equal(t, "hash:khoidong", usr.Password)

	cfg.BootstrapAdminPass = "other"
	require.NoError(t, uc.Bootstrap(ctx, cfg, f.logger))
	usr, err = f.store.Users().Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash:khoidong", usr.Password, "existing accounts are left alone")
}
