package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mlagunzad/pushcart/api/web"
	"github.com/mlagunzad/pushcart/api/weberr"
	"github.com/mlagunzad/pushcart/core/claims"
	"github.com/mlagunzad/pushcart/core/user"
	"github.com/mlagunzad/pushcart/rate"
	"github.com/mlagunzad/pushcart/validate"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in user.UserNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		u := user.User{
			ID:           validate.GenerateID(),
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         claims.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, u); err != nil {
			var pqerr *pq.Error
			if errors.As(err, &pqerr) && pqerr.Code == uniqueViolation {
				return weberr.Conflict(err, "an account with this email already exists")
			}
			return err
		}

		if err := login(ctx, session, u); err != nil {
			return err
		}

		data := struct {
			User user.User `json:"user"`
		}{u}

		return web.RespondSuccess(ctx, w, data, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager, limiter *rate.Limiter) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in user.Credentials
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if !limiter.Check(in.Email) {
			return weberr.TooManyRequests(fmt.Errorf("login throttled for %q", in.Email))
		}

		u, err := user.FetchByEmail(ctx, db, in.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "incorrect email or password", http.StatusUnauthorized)
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
			return weberr.NewError(err, "incorrect email or password", http.StatusUnauthorized)
		}

		if err := login(ctx, session, u); err != nil {
			return err
		}

		data := struct {
			User user.User `json:"user"`
		}{u}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// login renews the session token before storing identity, so a pre-login
// token never survives authentication.
func login(ctx context.Context, session *scs.SessionManager, u user.User) error {
	if err := session.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	session.Put(ctx, sessionKeyUserID, u.ID)
	session.Put(ctx, sessionKeyRole, u.Role)

	return nil
}
