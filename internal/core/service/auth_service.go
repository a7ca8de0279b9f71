package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login, logout, and session resume.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRepository
	denylist  ports.TokenDenylist
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewAuthService wires an AuthService. denylist may be nil, in which case
// logout clears the session but cannot revoke outstanding tokens.
func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	denylist ports.TokenDenylist,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		denylist:  denylist,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register validates the form, appends the new user to the persisted list,
// establishes the session, and returns a signed token with the user.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if err := validateRegister(input); err != nil {
		return "", nil, err
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		var parseErr *domain.StorageParseError
		if !errors.As(err, &parseErr) {
			return "", nil, err
		}
		// Corrupt user list: recover with an empty list rather than locking
		// everyone out of registration.
		metrics.StoreParseErrorsTotal.WithLabelValues("users").Inc()
		s.log.Warn().Err(parseErr).Msg("corrupt user list, starting fresh")
		existing = nil
	}
	for _, u := range existing {
		if u.Email == input.Email {
			return "", nil, domain.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Name:         domain.FullName(input.FirstName, input.LastName),
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	// The user-list and session writes are separate keys with no transaction
	// tying them. The list goes first: a crash in between leaves a registered
	// user with no session, which the next login repairs.
	if err := s.users.Append(ctx, user); err != nil {
		return "", nil, err
	}
	if err := s.sessions.Put(ctx, domain.Session{User: user}); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(&user)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return token, &user, nil
}

// Login authenticates the credentials, establishes the session, and returns
// a signed token with the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	users, err := s.users.List(ctx)
	if err != nil {
		var parseErr *domain.StorageParseError
		if errors.As(err, &parseErr) {
			metrics.StoreParseErrorsTotal.WithLabelValues("users").Inc()
			s.log.Warn().Err(parseErr).Msg("corrupt user list during login")
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	var user *domain.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.Put(ctx, domain.Session{User: *user}); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Logout clears the session record and revokes the presented token.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	if s.denylist != nil && tokenID != "" {
		if err := s.denylist.Revoke(ctx, tokenID); err != nil {
			// Revocation is best effort: the session record is already gone
			// and the token still expires on its own.
			s.log.Warn().Err(err).Msg("failed to revoke token")
		}
	}
	s.log.Info().Msg("session cleared")
	return nil
}

// ResumeSession reads the persisted session record. A corrupt record is
// logged and treated as no session; it is never raised to the caller.
func (s *AuthService) ResumeSession(ctx context.Context) (*domain.User, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		var parseErr *domain.StorageParseError
		if errors.As(err, &parseErr) {
			metrics.StoreParseErrorsTotal.WithLabelValues("session").Inc()
			s.log.Warn().Err(parseErr).Msg("corrupt session record, treating as no session")
			return nil, nil
		}
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return &session.User, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateRegister(input ports.RegisterInput) error {
	switch {
	case input.FirstName == "":
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	case input.LastName == "":
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	case input.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case input.Password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	case !input.AgreeToTerms:
		return fmt.Errorf("%w: terms must be accepted", domain.ErrValidation)
	case input.Password != input.ConfirmPassword:
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	case len(input.Password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}
