package session

import (
	"time"

	"github.com/sklowrylaw/website/pkg/domain/user"
)

// Session is the server-held login state of an administrator.
//
// The browser only carries the signed token referencing Id; everything
// else lives in the store and disappears on logout or expiry.
type Session struct {
	// Id is an opaque unique token (uuid).
	Id string

	UserId   int
	Username string
	Role     user.Role

	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at time now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TTL is how long a login stays valid.
const TTL = 24 * time.Hour
