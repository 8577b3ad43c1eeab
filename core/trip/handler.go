package trip

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
	"github.com/mlagunzad/pushcart/core/item"
	"github.com/mlagunzad/pushcart/database"
	"github.com/mlagunzad/pushcart/validate"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in TripNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		t := Trip{
			ID:        validate.GenerateID(),
			StoreName: in.StoreName,
			Budget:    in.Budget,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, t); err != nil {
			return err
		}

		data := struct {
			Grocery Trip `json:"grocery"`
		}{t}

		return web.RespondSuccess(ctx, w, data, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		tripID := web.Param(r, "id")
		if err := validate.CheckID(tripID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		t, err := Fetch(ctx, db, tripID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "grocery not found", http.StatusNotFound)
			}
			return err
		}

		data := struct {
			Grocery Trip `json:"grocery"`
		}{t}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

// HandleUpdate covers both plain edits and checkout. A checkout recomputes
// the grand total from the stored items instead of trusting the client's
// figure, then closes the trip.
func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		tripID := web.Param(r, "id")
		if err := validate.CheckID(tripID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up TripUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		t, err := Fetch(ctx, db, tripID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "grocery not found", http.StatusNotFound)
			}
			return err
		}

		if t.CheckoutDate != nil {
			return weberr.Conflict(errors.New("trip already checked out"), "cart is already checked out")
		}

		if up.StoreName != nil {
			t.StoreName = *up.StoreName
		}
		if up.Budget != nil {
			t.Budget = up.Budget
		}

		if up.CheckoutDate != nil {
			if err := checkout(ctx, db, &t, up); err != nil {
				return err
			}
		}

		t.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, t); err != nil {
			return err
		}

		data := struct {
			Grocery Trip `json:"grocery"`
		}{t}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}

func checkout(ctx context.Context, db *sqlx.DB, t *Trip, up TripUp) error {
	if up.PaidWith == nil {
		err := errors.New("paidWith is required to check out")
		return weberr.NewError(err, err.Error(), http.StatusBadRequest)
	}

	items, err := item.FetchByTrip(ctx, db, t.ID)
	if err != nil {
		return fmt.Errorf("fetching items for checkout: %w", err)
	}

	totals := make([]float64, 0, len(items))
	for _, it := range items {
		totals = append(totals, it.Total)
	}
	grandTotal := cart.GrandTotal(totals)

	if up.TotalAmount != nil && !cart.SameAmount(*up.TotalAmount, grandTotal) {
		err := fmt.Errorf("totalAmount %.2f does not match cart total %.2f", *up.TotalAmount, grandTotal)
		return weberr.Unprocessable(err, err.Error())
	}

	tendered := grandTotal
	if up.AmountTendered != nil {
		tendered = *up.AmountTendered
	}

	if !cart.CanCheckout(*up.PaidWith, tendered, grandTotal) {
		err := fmt.Errorf("amount tendered %.2f is less than total %.2f", tendered, grandTotal)
		return weberr.Unprocessable(err, err.Error())
	}

	change := cart.ChangeDue(tendered, grandTotal)

	t.CheckoutDate = up.CheckoutDate
	t.TotalAmount = &grandTotal
	t.PaidWith = up.PaidWith
	t.AmountTendered = &tendered
	t.ChangeDue = &change

	return nil
}

// HandleDelete removes the trip and its items in one transaction. Deleting
// an id with no match still succeeds.
func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		tripID := web.Param(r, "id")
		if err := validate.CheckID(tripID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := item.DeleteByTrip(ctx, tx, tripID); err != nil {
				return err
			}
			return Delete(ctx, tx, tripID)
		})
		if err != nil {
			return fmt.Errorf("deleting trip[%s] with items: %w", tripID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleListPrevious(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		summaries, err := FetchSummaries(ctx, db)
		if err != nil {
			return err
		}

		if len(summaries) == 0 {
			err := errors.New("no previous carts")
			return weberr.NewError(err, "no previous carts found", http.StatusNotFound)
		}

		data := struct {
			PreviousCarts []Summary `json:"previousCarts"`
		}{summaries}

		return web.RespondSuccess(ctx, w, data, http.StatusOK)
	}
}
