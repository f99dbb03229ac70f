package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a username does not exist, so the
// failure path pays for a bcrypt verification either way.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService handles credentials, sessions and the login audit log
type AuthService struct {
	userRepo     domain.UserRepository
	loginLogRepo domain.LoginLogRepository
	limiter      *loginLimiter
}

// NewAuthService creates an AuthService with default login throttling
func NewAuthService(userRepo domain.UserRepository, loginLogRepo domain.LoginLogRepository) *AuthService {
	return NewAuthServiceWithLoginLimit(userRepo, loginLogRepo, DefaultLoginRatePerMinute, DefaultLoginBurst)
}

// NewAuthServiceWithLoginLimit creates an AuthService with custom throttling
func NewAuthServiceWithLoginLimit(userRepo domain.UserRepository, loginLogRepo domain.LoginLogRepository, attemptsPerMinute, burst int) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
		limiter:      newLoginLimiter(attemptsPerMinute, burst),
	}
}

// AddUser creates a user with a salted hash of password. Role defaults to
// the regular user role when empty.
func (s *AuthService) AddUser(username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(&domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// Login verifies credentials and returns a fresh session. An unknown
// username and a wrong password fail identically; the caller cannot tell
// them apart. Every attempt is appended to the login log best-effort.
func (s *AuthService) Login(username, password string) (*domain.Session, error) {
	if !s.limiter.Allow(username) {
		log.Warn().Str("username", username).Msg("Login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.recordLogin(username, domain.LoginFailure)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.recordLogin(username, domain.LoginFailure)
		return nil, domain.ErrInvalidCredentials
	}

	s.recordLogin(username, domain.LoginSuccess)
	log.Info().Str("username", user.Username).Msg("User authenticated")

	return &domain.Session{
		Token:     uuid.New(),
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UpdatePassword replaces the stored hash for username. An unknown username
// is an explicit error, not a silent no-op.
func (s *AuthService) UpdatePassword(username, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(username, hash); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Password updated")
	return nil
}

// ListUsers returns all users. Admin sessions only.
func (s *AuthService) ListUsers(session *domain.Session) ([]*domain.User, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.List()
}

// ListLoginLogs returns the login audit log, most recent first. Admin
// sessions only.
func (s *AuthService) ListLoginLogs(session *domain.Session) ([]*domain.LoginLogEntry, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.loginLogRepo.List()
}

// EnsureBootstrapAdmin creates the initial admin account when no admin
// exists yet. Safe to call on every startup.
func (s *AuthService) EnsureBootstrapAdmin(username, password string) error {
	hasAdmin, err := s.userRepo.HasAdmin()
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	if _, err := s.AddUser(username, password, domain.RoleAdmin); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Created bootstrap admin")
	return nil
}

// recordLogin appends to the login log. Failures never block the
// authentication result.
func (s *AuthService) recordLogin(username string, status domain.LoginStatus) {
	if err := s.loginLogRepo.Append(username, status); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Failed to record login attempt")
	}
}
