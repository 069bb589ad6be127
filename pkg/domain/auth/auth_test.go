package auth_test

import (
	"errors"
	"testing"

	"github.com/sklowrylaw/website/pkg/domain/auth"
	"github.com/sklowrylaw/website/pkg/domain/user"
	"github.com/sklowrylaw/website/pkg/utils/try"
)

func TestVerifyLocal(t *testing.T) {
	hash := try.To(auth.HashPassword("correct horse battery staple")).OrFatal(t)

	t.Run("it accepts the right password", func(t *testing.T) {
		u := user.User{Username: "sharon", PasswordHash: &hash}
		if err := auth.VerifyLocal(u, "correct horse battery staple"); err != nil {
			t.Errorf("correct password is rejected: %v", err)
		}
	})

	t.Run("it rejects a wrong password", func(t *testing.T) {
		u := user.User{Username: "sharon", PasswordHash: &hash}
		if err := auth.VerifyLocal(u, "wrong"); !errors.Is(err, auth.ErrBadCredential) {
			t.Errorf("wrong password: got %v, want ErrBadCredential", err)
		}
	})

	t.Run("it rejects a federated-only account", func(t *testing.T) {
		u := user.User{Username: "sharon", PasswordHash: nil}
		if err := auth.VerifyLocal(u, "anything"); !errors.Is(err, auth.ErrBadCredential) {
			t.Errorf("federated-only account: got %v, want ErrBadCredential", err)
		}
	})
}

func TestAllowList(t *testing.T) {
	list := auth.AllowList{"sklowry@sklowrylaw.com", "Webmaster@SKLowryLaw.com "}

	for name, testcase := range map[string]struct {
		email string
		want  bool
	}{
		"exact match":               {"sklowry@sklowrylaw.com", true},
		"case-insensitive match":    {"SKLowry@sklowrylaw.COM", true},
		"entry with spaces matches": {"webmaster@sklowrylaw.com", true},
		"unknown address":           {"stranger@example.com", false},
		"empty address":             {"", false},
	} {
		t.Run(name, func(t *testing.T) {
			if got := list.Contains(testcase.email); got != testcase.want {
				t.Errorf("Contains(%q): got %v, want %v", testcase.email, got, testcase.want)
			}
		})
	}
}
