package trip

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, t Trip) error {
	const q = `
	INSERT INTO trips
		(trip_id, store_name, budget, checkout_date, total_amount, paid_with, amount_tendered, change_due, created_at, updated_at)
	VALUES
		(:trip_id, :store_name, :budget, :checkout_date, :total_amount, :paid_with, :amount_tendered, :change_due, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, t); err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Trip, error) {
	const q = `SELECT * FROM trips WHERE trip_id = $1`

	var t Trip
	if err := sqlx.GetContext(ctx, db, &t, q, id); err != nil {
		return Trip{}, fmt.Errorf("fetching trip[%s]: %w", id, err)
	}

	return t, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, t Trip) error {
	const q = `
	UPDATE trips SET
		store_name = :store_name,
		budget = :budget,
		checkout_date = :checkout_date,
		total_amount = :total_amount,
		paid_with = :paid_with,
		amount_tendered = :amount_tendered,
		change_due = :change_due,
		updated_at = :updated_at
	WHERE trip_id = :trip_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, t); err != nil {
		return fmt.Errorf("updating trip[%s]: %w", t.ID, err)
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM trips WHERE trip_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting trip[%s]: %w", id, err)
	}

	return nil
}

// FetchSummaries left-joins every trip to its items and sums the line
// totals, so trips with no items still report a zero total.
func FetchSummaries(ctx context.Context, db sqlx.ExtContext) ([]Summary, error) {
	const q = `
	SELECT
		t.trip_id,
		t.store_name,
		t.budget,
		COALESCE(SUM(i.total), 0) AS total_amount
	FROM trips t
	LEFT JOIN items i ON i.trip_id = t.trip_id
	GROUP BY t.trip_id, t.store_name, t.budget, t.created_at
	ORDER BY t.created_at DESC`

	summaries := []Summary{}
	if err := sqlx.SelectContext(ctx, db, &summaries, q); err != nil {
		return nil, fmt.Errorf("fetching trip summaries: %w", err)
	}

	return summaries, nil
}
