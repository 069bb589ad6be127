// Package auth carries the request and response payloads of the login
// and session endpoints.
package auth

// LoginRequest is the body of a local login. Username may be either
// the account's username or its email address; Email is accepted as an
// alias for clients that send it instead.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Login returns the identifier the client supplied.
func (req LoginRequest) Login() string {
	if req.Username != "" {
		return req.Username
	}
	return req.Email
}

// UserInfo is the signed-in identity as the API shows it.
type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse acknowledges a successful login.
type LoginResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

// StatusResponse reports whether the caller holds a live session.
type StatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
}
