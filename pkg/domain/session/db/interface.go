package db

import (
	"context"

	"github.com/sklowrylaw/website/pkg/domain/session"
	"github.com/sklowrylaw/website/pkg/domain/user"
)

// SessionInterface is the server-side session store.
type SessionInterface interface {
	// New creates and stores a session for the user, expiring
	// session.TTL from now.
	New(ctx context.Context, u user.User) (session.Session, error)

	// Get returns the live session with the given id.
	//
	// Expired sessions are deleted on sight; both an expired and an
	// unknown id yield an error wrapping errors.ErrMissing.
	Get(ctx context.Context, id string) (session.Session, error)

	// Delete destroys the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
