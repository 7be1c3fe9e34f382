// Package auth handles user accounts, password verification, and the
// in-memory session registry the HTTP layer authenticates against.
package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when creating a staff account with a
	// username that already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound is returned by repositories for a missing user.
	ErrUserNotFound = errors.New("user not found")
)

// Role distinguishes the admin dashboard from the staff order screen.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Default admin account seeded on first start.
const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// User is a staff or admin account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Repository defines user persistence operations.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	ListStaff(ctx context.Context) ([]User, error)
}

// Service implements login and staff management over a user Repository.
type Service struct {
	users Repository
}

// NewService creates an auth Service.
func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Login verifies the password against the stored bcrypt hash and returns the
// matching user.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CreateStaff creates a staff account with the given credentials. Only the
// admin dashboard calls this.
func (s *Service) CreateStaff(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, ErrUserNotFound):
		return nil, errors.Wrap(err, "check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleStaff,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

// ListStaff returns all staff accounts.
func (s *Service) ListStaff(ctx context.Context) ([]User, error) {
	return s.users.ListStaff(ctx)
}

// EnsureAdmin creates the default admin account if it does not exist yet.
// Called once at startup.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	_, err := s.users.FindByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return errors.Wrap(err, "check admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	u := &User{
		Username:     adminUsername,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return errors.Wrap(err, "create admin")
	}
	return nil
}
