package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phan14/du-an-ss2/internal/config"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	pkgAuth "github.com/phan14/du-an-ss2/internal/pkg/auth"
)

// AuthUseCase handles staff accounts and session tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Login validates credentials and returns the user with a session token.
// Every credential failure is reported as ErrInvalidCredentials.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.Password, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.Username)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// UserFromToken resolves the account a session token was issued for.
func (u *AuthUseCase) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	username, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	usr, err := u.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}
	return usr, nil
}

// Users lists accounts ordered by username.
func (u *AuthUseCase) Users(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// SaveUser creates or updates an account. An empty password on update keeps the stored one.
func (u *AuthUseCase) SaveUser(ctx context.Context, actor model.User, in model.User) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if in.Username == "" {
		return nil, domainErrors.Invalid("username", domainErrors.ErrRequired)
	}
	if in.Name == "" {
		return nil, domainErrors.Invalid("name", domainErrors.ErrRequired)
	}
	switch in.Role {
	case model.UserRoleAdmin, model.UserRoleStaff:
	case "":
		return nil, domainErrors.Invalid("role", domainErrors.ErrRequired)
	default:
		return nil, domainErrors.Invalid("role", domainErrors.ErrInvalidRole)
	}

	existing, err := u.users.Get(ctx, in.Username)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		if in.Password == "" {
			return nil, domainErrors.Invalid("password", domainErrors.ErrRequired)
		}
	case err != nil:
		return nil, err
	}

	if in.Password == "" {
		in.Password = existing.Password
	} else {
		hash, err := u.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		in.Password = hash
	}

	if err := u.users.Upsert(ctx, in); err != nil {
		return nil, err
	}
	return &in, nil
}

// DeleteUser removes an account. Admins cannot remove themselves.
func (u *AuthUseCase) DeleteUser(ctx context.Context, actor model.User, username string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	if actor.Username == username {
		return domainErrors.ErrSelfDelete
	}
	return u.users.Delete(ctx, username)
}

// Bootstrap creates the configured admin account when no account exists yet.
func (u *AuthUseCase) Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	users, err := u.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if cfg.BootstrapAdminPass == "" {
		logger.Warn("no staff accounts exist and BOOTSTRAP_ADMIN_PASSWORD is empty; nobody can log in")
		return nil
	}
	hash, err := u.hasher.Hash(cfg.BootstrapAdminPass)
	if err != nil {
		return err
	}
	admin := model.User{
		Username: cfg.BootstrapAdminUser,
		Name:     "Quản trị viên",
		Role:     model.UserRoleAdmin,
		Password: hash,
	}
	if err := u.users.Upsert(ctx, admin); err != nil {
		return err
	}
	logger.Info("bootstrap admin account created", slog.String("username", admin.Username))
	return nil
}
