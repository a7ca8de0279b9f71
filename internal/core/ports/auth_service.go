package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// RegisterInput carries the registration form fields. AgreeToTerms is
// validated but never stored.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}

// AuthService defines account and session use-cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string) error
	// ResumeSession returns the persisted session user, or nil when no
	// session is stored. A corrupt session record is treated as no session.
	ResumeSession(ctx context.Context) (*domain.User, error)
}
