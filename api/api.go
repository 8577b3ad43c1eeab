package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/mlagunzad/pushcart/api/middleware"
	"github.com/mlagunzad/pushcart/api/web"
	"github.com/mlagunzad/pushcart/core/auth"
	"github.com/mlagunzad/pushcart/core/item"
	"github.com/mlagunzad/pushcart/core/shoppinglist"
	"github.com/mlagunzad/pushcart/core/trip"
	"github.com/mlagunzad/pushcart/core/user"
	"github.com/mlagunzad/pushcart/database"
	"github.com/mlagunzad/pushcart/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	LoginLimit *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)

	a.Handle(http.MethodGet, "/healthcheck", handleHealthcheck(cfg.DB))

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session, cfg.LoginLimit))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)

	// Fixed paths must beat the {id} routes, so they register first.
	a.Handle(http.MethodGet, "/grocery/previous-carts", trip.HandleListPrevious(cfg.DB))
	a.Handle(http.MethodGet, "/grocery/last-grocery-items", item.HandleListLastTrip(cfg.DB))
	a.Handle(http.MethodGet, "/grocery/autofill/{query}", item.HandleAutofill(cfg.DB))

	a.Handle(http.MethodPost, "/grocery/new-item", item.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/grocery/{id}/items", item.HandleListByTrip(cfg.DB))
	a.Handle(http.MethodPatch, "/grocery/item/{id}", item.HandleUpdate(cfg.DB))
	a.Handle(http.MethodDelete, "/grocery/item/{id}", item.HandleDelete(cfg.DB))

	a.Handle(http.MethodPost, "/grocery/new-grocery", trip.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/grocery/{id}", trip.HandleShow(cfg.DB))
	a.Handle(http.MethodPatch, "/grocery/{id}", trip.HandleUpdate(cfg.DB))
	a.Handle(http.MethodDelete, "/grocery/{id}", trip.HandleDelete(cfg.DB))

	a.Handle(http.MethodGet, "/shopping-list", shoppinglist.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/shopping-list/add", shoppinglist.HandleAdd(cfg.DB))
	a.Handle(http.MethodPatch, "/shopping-list/update-item/{id}", shoppinglist.HandleUpdate(cfg.DB))
	a.Handle(http.MethodDelete, "/shopping-list/remove/{id}", shoppinglist.HandleRemove(cfg.DB))
	a.Handle(http.MethodPost, "/shopping-list/clear", shoppinglist.HandleClear(cfg.DB))

	return a.Router
}

func handleHealthcheck(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := database.StatusCheck(ctx, db); err != nil {
			return err
		}

		body := web.Envelope{Status: "success", Message: "API is running"}
		return web.Respond(ctx, w, body, http.StatusOK)
	}
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
