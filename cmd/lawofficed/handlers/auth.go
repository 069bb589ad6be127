package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apiauth "github.com/sklowrylaw/website/pkg/api/types/auth"
	apierr "github.com/sklowrylaw/website/pkg/api/types/errors"
	"github.com/sklowrylaw/website/pkg/domain/auth"
	domerr "github.com/sklowrylaw/website/pkg/domain/errors"
	"github.com/sklowrylaw/website/pkg/domain/session"
	sessiondb "github.com/sklowrylaw/website/pkg/domain/session/db"
	"github.com/sklowrylaw/website/pkg/domain/user"
	userdb "github.com/sklowrylaw/website/pkg/domain/user/db"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "site_session"

	// stateCookie pins the federated login flow to one browser.
	stateCookie = "federated_state"
)

func sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func userInfo(sess session.Session) apiauth.UserInfo {
	return apiauth.UserInfo{Username: sess.Username, Role: string(sess.Role)}
}

// LoginHandler signs an administrator in with a local password.
//
// Every failure path answers the same 401 so that callers cannot probe
// which accounts exist or which of them are federated-only.
func LoginHandler(
	dbuser userdb.UserInterface,
	dbsess sessiondb.SessionInterface,
	signer *session.Signer,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apiauth.LoginRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.Login() == "" || req.Password == "" {
			return apierr.BadRequest("username and password are required", nil)
		}

		u, err := dbuser.GetByLogin(ctx, req.Login())
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.Unauthorized("invalid credentials", nil)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		if err := auth.VerifyLocal(u, req.Password); err != nil {
			return apierr.Unauthorized("invalid credentials", err)
		}

		sess, err := dbsess.New(ctx, u)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		token, err := signer.Sign(sess)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		c.SetCookie(sessionCookie(token, sess.ExpiresAt))
		return c.JSON(http.StatusOK, apiauth.LoginResponse{
			Success: true, User: userInfo(sess),
		})
	}
}

// LogoutHandler destroys the caller's session. It succeeds even
// without one: logging out twice is not an error.
func LogoutHandler(dbsess sessiondb.SessionInterface, signer *session.Signer) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess, err := currentSession(c, dbsess, signer); err == nil {
			if err := dbsess.Delete(c.Request().Context(), sess.Id); err != nil {
				return apierr.InternalServerError(err)
			}
		}

		c.SetCookie(sessionCookie("", time.Unix(0, 0)))
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

// AuthStatusHandler reports whether the caller holds a live session.
// It always answers 200; "not signed in" is a state, not an error.
func AuthStatusHandler(dbsess sessiondb.SessionInterface, signer *session.Signer) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := currentSession(c, dbsess, signer)
		if err != nil {
			return c.JSON(http.StatusOK, apiauth.StatusResponse{Authenticated: false})
		}

		info := userInfo(sess)
		return c.JSON(http.StatusOK, apiauth.StatusResponse{
			Authenticated: true, User: &info,
		})
	}
}

// FederatedLoginHandler starts the redirect-based login flow.
func FederatedLoginHandler(provider *auth.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		if provider == nil {
			return apierr.NewErrorMessage(
				http.StatusNotFound, "federated login is not configured",
			)
		}

		state, err := newState()
		if err != nil {
			return apierr.InternalServerError(err)
		}
		c.SetCookie(&http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/api/auth",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
	}
}

// FederatedCallbackHandler finishes the flow: it checks state, fetches
// the provider's profile, applies the allow-list and signs the user in.
func FederatedCallbackHandler(
	provider *auth.Provider,
	allowed auth.AllowList,
	dbuser userdb.UserInterface,
	dbsess sessiondb.SessionInterface,
	signer *session.Signer,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		if provider == nil {
			return apierr.NewErrorMessage(
				http.StatusNotFound, "federated login is not configured",
			)
		}
		ctx := c.Request().Context()

		stateCk, err := c.Cookie(stateCookie)
		if err != nil || stateCk.Value == "" || stateCk.Value != c.QueryParam("state") {
			return apierr.Unauthorized("login flow state mismatch: start over", err)
		}
		c.SetCookie(&http.Cookie{
			Name: stateCookie, Value: "", Path: "/api/auth", MaxAge: -1,
		})

		code := c.QueryParam("code")
		if code == "" {
			return apierr.Unauthorized("the identity provider did not send a code", nil)
		}

		profile, err := provider.FetchProfile(ctx, code)
		if err != nil {
			return apierr.Unauthorized("could not verify your identity", err)
		}

		if !allowed.Contains(profile.Email) {
			return apierr.Unauthorized("this account is not authorized for the admin area", nil)
		}

		u, err := dbuser.EnsureFederated(ctx, user.FederatedIdentity{
			Provider:   provider.Name,
			ProviderId: profile.Subject,
			Email:      profile.Email,
			Name:       profile.Name,
		})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		sess, err := dbsess.New(ctx, u)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		token, err := signer.Sign(sess)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		c.SetCookie(sessionCookie(token, sess.ExpiresAt))
		return c.Redirect(http.StatusFound, "/admin")
	}
}

// AdminOnly gates a route group behind a live admin session. It fails
// closed: no cookie, a bad token, an expired session and a non-admin
// role all answer 401.
func AdminOnly(dbsess sessiondb.SessionInterface, signer *session.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := currentSession(c, dbsess, signer)
			if err != nil {
				return apierr.Unauthorized("sign in to access the admin area", err)
			}
			if sess.Role != user.RoleAdmin {
				return apierr.Unauthorized("sign in to access the admin area", nil)
			}
			return next(c)
		}
	}
}

// currentSession resolves the caller's cookie to a live session.
func currentSession(
	c echo.Context, dbsess sessiondb.SessionInterface, signer *session.Signer,
) (session.Session, error) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return session.Session{}, domerr.ErrMissing
	}

	id, err := signer.Verify(ck.Value)
	if err != nil {
		return session.Session{}, err
	}

	return dbsess.Get(c.Request().Context(), id)
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
