package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sklowrylaw/website/pkg/domain/user"
)

// ErrBadCredential is returned for every way a local login can fail:
// unknown user, federated-only account, wrong password. Callers surface
// it as one generic message so login attempts cannot probe which
// accounts exist.
var ErrBadCredential = errors.New("invalid credentials")

// VerifyLocal checks a local password login against the stored user.
func VerifyLocal(u user.User, password string) error {
	if u.PasswordHash == nil {
		// federated-only account; no local credential to check against
		return ErrBadCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return ErrBadCredential
	}
	return nil
}

// HashPassword makes the bcrypt hash stored for local accounts.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
