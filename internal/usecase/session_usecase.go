// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// SessionUsecase manages the signed-in user's credential, identity and role.
type SessionUsecase interface {
	// Login exchanges credentials for a bearer token and persists the session.
	Login(ctx context.Context, creds *entity.Credentials) (*entity.Session, error)

	// Register creates an account, optionally uploading a profile image, and persists the session.
	Register(ctx context.Context, input *entity.Registration, image *service.FilePart) (*entity.Session, error)

	// Logout forgets the persisted session.
	Logout(ctx context.Context) error

	// Current reads the persisted session. A missing or expired token yields ErrUnauthenticated.
	Current(ctx context.Context) (*entity.Session, error)

	// Profile fetches the signed-in user's account.
	Profile(ctx context.Context) (*entity.User, error)
}
