package item

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO items
		(item_id, trip_id, barcode, description, price, quantity, unit, total, created_at, updated_at)
	VALUES
		(:item_id, :trip_id, :barcode, :description, :price, :quantity, :unit, :total, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Item, error) {
	const q = `SELECT * FROM items WHERE item_id = $1`

	var it Item
	if err := sqlx.GetContext(ctx, db, &it, q, id); err != nil {
		return Item{}, fmt.Errorf("fetching item[%s]: %w", id, err)
	}

	return it, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	UPDATE items SET
		barcode = :barcode,
		description = :description,
		price = :price,
		quantity = :quantity,
		unit = :unit,
		total = :total,
		updated_at = :updated_at
	WHERE item_id = :item_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("updating item[%s]: %w", it.ID, err)
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM items WHERE item_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting item[%s]: %w", id, err)
	}

	return nil
}

func FetchByTrip(ctx context.Context, db sqlx.ExtContext, tripID string) ([]Item, error) {
	const q = `SELECT * FROM items WHERE trip_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, tripID); err != nil {
		return nil, fmt.Errorf("fetching items of trip[%s]: %w", tripID, err)
	}

	return items, nil
}

func DeleteByTrip(ctx context.Context, db sqlx.ExtContext, tripID string) error {
	const q = `DELETE FROM items WHERE trip_id = $1`

	if _, err := db.ExecContext(ctx, q, tripID); err != nil {
		return fmt.Errorf("deleting items of trip[%s]: %w", tripID, err)
	}

	return nil
}

// Search returns historical items whose description contains the query,
// newest first. It backs the add-item autofill.
func Search(ctx context.Context, db sqlx.ExtContext, query string, limit int) ([]Item, error) {
	const q = `
	SELECT * FROM items
	WHERE description ILIKE '%' || $1 || '%'
	ORDER BY created_at DESC
	LIMIT $2`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, query, limit); err != nil {
		return nil, fmt.Errorf("searching items[%s]: %w", query, err)
	}

	return items, nil
}

// FetchLastTripItems returns the items of the most recently checked-out
// trip that are not already staged on the shopping list. They feed the
// restock-suggestion deck.
func FetchLastTripItems(ctx context.Context, db sqlx.ExtContext) ([]Item, error) {
	const q = `
	SELECT i.* FROM items i
	WHERE i.trip_id = (
		SELECT trip_id FROM trips
		WHERE checkout_date IS NOT NULL
		ORDER BY checkout_date DESC
		LIMIT 1
	)
	AND NOT EXISTS (
		SELECT 1 FROM shopping_list sl
		WHERE lower(sl.description) = lower(i.description)
	)
	ORDER BY i.created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q); err != nil {
		return nil, fmt.Errorf("fetching last trip items: %w", err)
	}

	return items, nil
}

// tripCheckoutDate looks up the owning trip without importing the trip
// package. sql.ErrNoRows means the trip does not exist.
func tripCheckoutDate(ctx context.Context, db sqlx.ExtContext, tripID string) (*time.Time, error) {
	const q = `SELECT checkout_date FROM trips WHERE trip_id = $1`

	var checkout *time.Time
	if err := db.QueryRowxContext(ctx, q, tripID).Scan(&checkout); err != nil {
		return nil, err
	}

	return checkout, nil
}
