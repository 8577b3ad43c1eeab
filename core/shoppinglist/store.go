package shoppinglist

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Entry, error) {
	const q = `SELECT * FROM shopping_list ORDER BY created_at`

	entries := []Entry{}
	if err := sqlx.SelectContext(ctx, db, &entries, q); err != nil {
		return nil, fmt.Errorf("fetching shopping list: %w", err)
	}

	return entries, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Entry, error) {
	const q = `SELECT * FROM shopping_list WHERE entry_id = $1`

	var e Entry
	if err := sqlx.GetContext(ctx, db, &e, q, id); err != nil {
		return Entry{}, fmt.Errorf("fetching shopping list entry[%s]: %w", id, err)
	}

	return e, nil
}

// FetchMatch finds the entry an add should fold into: by originating item
// when given, else by case-insensitive description. When one row matches the
// item ref and another only the description, the ref match wins.
func FetchMatch(ctx context.Context, db sqlx.ExtContext, itemRef *string, description string) (Entry, error) {
	const q = `
	SELECT * FROM shopping_list
	WHERE ($1::text IS NOT NULL AND item_ref = $1)
	   OR lower(description) = lower($2)
	ORDER BY ($1::text IS NOT NULL AND item_ref IS NOT DISTINCT FROM $1) DESC, created_at
	LIMIT 1`

	var e Entry
	if err := sqlx.GetContext(ctx, db, &e, q, itemRef, description); err != nil {
		return Entry{}, fmt.Errorf("matching shopping list entry[%s]: %w", description, err)
	}

	return e, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, e Entry) error {
	const q = `
	INSERT INTO shopping_list
		(entry_id, item_ref, description, quantity, price, checked, created_at, updated_at)
	VALUES
		(:entry_id, :item_ref, :description, :quantity, :price, :checked, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, e); err != nil {
		return fmt.Errorf("inserting shopping list entry: %w", err)
	}

	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, e Entry) error {
	const q = `
	UPDATE shopping_list SET
		description = :description,
		quantity = :quantity,
		price = :price,
		checked = :checked,
		updated_at = :updated_at
	WHERE entry_id = :entry_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, e); err != nil {
		return fmt.Errorf("updating shopping list entry[%s]: %w", e.ID, err)
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM shopping_list WHERE entry_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting shopping list entry[%s]: %w", id, err)
	}

	return nil
}

func Clear(ctx context.Context, db sqlx.ExtContext) error {
	const q = `DELETE FROM shopping_list`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("clearing shopping list: %w", err)
	}

	return nil
}
