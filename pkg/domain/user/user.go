package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account able to sign in to the admin area.
type User struct {
	Id       int
	Username string
	Email    string

	// PasswordHash is the bcrypt hash for local logins.
	// Federated-only accounts have no local credential and carry nil.
	PasswordHash *string

	// Provider and ProviderId identify the federated identity this
	// account was created from, when it was.
	Provider   *string
	ProviderId *string

	Role      Role
	CreatedAt time.Time
}

// FederatedIdentity is a verified profile received from an identity provider.
type FederatedIdentity struct {
	Provider   string
	ProviderId string
	Email      string
	Name       string
}
