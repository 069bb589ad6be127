package auth

import "strings"

// AllowList is the set of email addresses permitted to administer the
// site via federated login. It is loaded from config at process start;
// the daemon restarts when the config file changes.
type AllowList []string

// Contains matches case-insensitively and ignores surrounding whitespace.
func (a AllowList) Contains(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range a {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}
