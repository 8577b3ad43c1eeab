package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mlagunzad/pushcart/api/web"
	"github.com/mlagunzad/pushcart/api/weberr"
	"github.com/mlagunzad/pushcart/core/cart"
	"github.com/mlagunzad/pushcart/validate"
)

const autofillLimit = 10

var errTripClosed = errors.New("trip is already checked out")

// openTrip ensures the trip exists and is not checked out yet.
func openTrip(ctx context.Context, db sqlx.ExtContext, tripID string) error {
	checkout, err := tripCheckoutDate(ctx, db, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return weberr.NotFound(fmt.Errorf("trip[%s] not found", tripID))
		}
		return fmt.Errorf("fetching trip[%s]: %w", tripID, err)
	}

	if checkout != nil {
		return weberr.Conflict(errTripClosed, "cannot modify items of a checked out cart")
	}

	return nil
}

func HandleListByTrip(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		tripID := web.Param(r, "id")
		if err := validate.CheckID(tripID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := tripCheckoutDate(ctx, db, tripID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "grocery not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching trip[%s]: %w", tripID, err)
		}

		items, err := FetchByTrip(ctx, db, tripID)
		if err != nil {
			return err
		}

		data := struct {
			Items []Item `json:"groceryItems"`
		}{items}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := openTrip(ctx, db, in.TripID); err != nil {
			return err
		}

		// The server owns the total. A client-supplied total that disagrees
		// with price x quantity is rejected rather than stored.
		total := cart.ItemTotal(in.Price, in.Quantity)
		if in.Total != nil && !cart.Matches(*in.Total, in.Price, in.Quantity) {
			err := fmt.Errorf("total %.2f does not match price %.2f x quantity %d", *in.Total, in.Price, in.Quantity)
			return weberr.Unprocessable(err, err.Error())
		}

		now := time.Now().UTC()
		it := Item{
			ID:          validate.GenerateID(),
			TripID:      in.TripID,
			Barcode:     in.Barcode,
			Description: in.Description,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Total:       total,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := Create(ctx, db, it); err != nil {
			return err
		}

		data := struct {
			Item Item `json:"groceryItem"`
		}{it}

		return web.RespondSuccess(ctx, w, data, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ItemUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		it, err := Fetch(ctx, db, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "grocery item not found", http.StatusNotFound)
			}
			return err
		}

		if err := openTrip(ctx, db, it.TripID); err != nil {
			return err
		}

		if up.Barcode != nil {
			it.Barcode = *up.Barcode
		}
		if up.Description != nil {
			it.Description = *up.Description
		}
		if up.Price != nil {
			it.Price = *up.Price
		}
		if up.Quantity != nil {
			it.Quantity = *up.Quantity
		}
		if up.Unit != nil {
			it.Unit = *up.Unit
		}

		it.Total = cart.ItemTotal(it.Price, it.Quantity)
		if up.Total != nil && !cart.Matches(*up.Total, it.Price, it.Quantity) {
			err := fmt.Errorf("total %.2f does not match price %.2f x quantity %d", *up.Total, it.Price, it.Quantity)
			return weberr.Unprocessable(err, err.Error())
		}
		it.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, it); err != nil {
			return err
		}

		data := struct {
			Item Item `json:"groceryItem"`
		}{it}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		// Deletes are idempotent: an id with no match still succeeds, but an
		// existing item on a closed trip must stay put.
		it, err := Fetch(ctx, db, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return web.Respond(ctx, w, nil, http.StatusNoContent)
			}
			return err
		}

		if err := openTrip(ctx, db, it.TripID); err != nil {
			return err
		}

		if err := Delete(ctx, db, itemID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleAutofill(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		query := web.Param(r, "query")
		if query == "" {
			err := errors.New("query must not be empty")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		items, err := Search(ctx, db, query, autofillLimit)
		if err != nil {
			return err
		}

		data := struct {
			Suggestions []Item `json:"suggestions"`
		}{items}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func HandleListLastTrip(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		items, err := FetchLastTripItems(ctx, db)
		if err != nil {
			return err
		}

		data := struct {
			Items []Item `json:"lastGroceryItems"`
		}{items}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}
