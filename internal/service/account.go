package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/security"
	"barangayhub/api/internal/store"
)

// ErrInvalidCredentials is returned for an unknown identity and for a
// wrong password alike, so a caller cannot probe which emails are
// registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks missing or malformed input; the boundary maps it
// to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// AccountService orchestrates signup, login, and profile flows over the
// user and admin stores.
type AccountService struct {
	users  store.UserStore
	admins store.AdminStore
	tokens *security.TokenManager
	log    zerolog.Logger
}

func NewAccountService(users store.UserStore, admins store.AdminStore, tokens *security.TokenManager, log zerolog.Logger) *AccountService {
	return &AccountService{
		users:  users,
		admins: admins,
		tokens: tokens,
		log:    log,
	}
}

type SignupInput struct {
	Fullname string
	Email    string
	Password string
}

// Signup registers a new citizen account. Emails are normalized to
// lowercase before storage, so uniqueness is case-insensitive.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	fullname := strings.TrimSpace(input.Fullname)
	email := normalizeEmail(input.Email)
	if fullname == "" || email == "" || input.Password == "" {
		return models.User{}, validationErrorf("fullname, email and password are required")
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.Create(ctx, models.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token for the user.
func (s *AccountService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, "", validationErrorf("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, models.RoleUser)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Profile fetches a single account by id.
func (s *AccountService) Profile(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// AdminLogin verifies back-office credentials and issues a token carrying
// the admin role.
func (s *AccountService) AdminLogin(ctx context.Context, username, password string) (models.Admin, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Admin{}, "", validationErrorf("username and password are required")
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Admin{}, "", ErrInvalidCredentials
		}
		return models.Admin{}, "", err
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return models.Admin{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Username, models.RoleAdmin)
	if err != nil {
		return models.Admin{}, "", err
	}
	return admin, token, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
