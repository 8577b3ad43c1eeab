// Package shoppinglist holds the staging list: items a user pre-stages for
// a future trip, independent of any cart. Adding a description that is
// already on the list bumps its quantity instead of creating a duplicate.
package shoppinglist

import "time"

type Entry struct {
	ID          string    `json:"id" db:"entry_id"`
	ItemRef     *string   `json:"groceryItemId" db:"item_ref"`
	Description string    `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	Checked     bool      `json:"checked" db:"checked"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type EntryNew struct {
	ItemRef     *string  `json:"groceryItemId"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

type EntryUp struct {
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Checked     *bool    `json:"checked"`
}
