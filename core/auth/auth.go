package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/mlagunzad/pushcart/api/web"
	"github.com/mlagunzad/pushcart/api/weberr"
	"github.com/mlagunzad/pushcart/core/claims"
)

const (
	sessionKeyUserID = "userID"
	sessionKeyRole   = "role"
)

// LoadAndSave adapts the scs middleware to the web.Handler chain so every
// request runs inside a session context.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			wrapped := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			wrapped.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}

// Authenticate hydrates claims from the session and rejects anonymous
// requests.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, sessionKeyUserID)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("no authenticated session"))
			}

			clm := claims.Claims{
				UserID: userID,
				Role:   session.GetString(ctx, sessionKeyRole),
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}
