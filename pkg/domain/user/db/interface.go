package db

import (
	"context"

	"github.com/sklowrylaw/website/pkg/domain/user"
)

// UserInterface is the persistence boundary for admin site accounts.
type UserInterface interface {
	// GetByLogin finds a user whose email or username equals login.
	//
	// When no such user exists, it returns an error wrapping
	// errors.ErrMissing.
	GetByLogin(ctx context.Context, login string) (user.User, error)

	// EnsureFederated finds the user for the given federated identity,
	// creating one when it is seen for the first time.
	//
	// The stored role is set to admin in both cases: callers only reach
	// this after the allow-list check, and the allow-list is the source
	// of truth for who administers the site.
	EnsureFederated(ctx context.Context, ident user.FederatedIdentity) (user.User, error)
}
