package shoppinglist

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mlagunzad/pushcart/api/web"
	"github.com/mlagunzad/pushcart/api/weberr"
	"github.com/mlagunzad/pushcart/database"
	"github.com/mlagunzad/pushcart/validate"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		entries, err := FetchAll(ctx, db)
		if err != nil {
			return err
		}

		data := struct {
			Items []Entry `json:"items"`
		}{entries}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

// HandleAdd folds the add into an existing entry when one matches,
// incrementing its quantity by one, and inserts with quantity 1 otherwise.
func HandleAdd(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in EntryNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var out Entry
		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			e, err := FetchMatch(ctx, tx, in.ItemRef, in.Description)
			switch {
			case err == nil:
				e.Quantity++
				e.UpdatedAt = time.Now().UTC()
				out = e
				return Update(ctx, tx, e)

			case errors.Is(err, sql.ErrNoRows):
				now := time.Now().UTC()
				e := Entry{
					ID:          validate.GenerateID(),
					ItemRef:     in.ItemRef,
					Description: in.Description,
					Quantity:    1,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if in.Price != nil {
					e.Price = *in.Price
				}
				out = e
				return Create(ctx, tx, e)

			default:
				return err
			}
		})
		if err != nil {
			return err
		}

		data := struct {
			Item Entry `json:"item"`
		}{out}

		return web.RespondSuccess(ctx, w, data, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		entryID := web.Param(r, "id")
		if err := validate.CheckID(entryID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up EntryUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		e, err := Fetch(ctx, db, entryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "shopping list item not found", http.StatusNotFound)
			}
			return err
		}

		if up.Description != nil {
			e.Description = *up.Description
		}
		if up.Quantity != nil {
			e.Quantity = *up.Quantity
		}
		if up.Price != nil {
			e.Price = *up.Price
		}
		if up.Checked != nil {
			e.Checked = *up.Checked
		}
		e.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, e); err != nil {
			return err
		}

		data := struct {
			Item Entry `json:"item"`
		}{e}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func HandleRemove(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		entryID := web.Param(r, "id")
		if err := validate.CheckID(entryID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := Delete(ctx, db, entryID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleClear(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := Clear(ctx, db); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
