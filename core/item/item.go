package item

import "time"

// Item is one line in a trip's cart. Total is always derived server-side
// from price and quantity; a zero price means the price is not yet known.
type Item struct {
	ID          string    `json:"id" db:"item_id"`
	TripID      string    `json:"groceryId" db:"trip_id"`
	Barcode     string    `json:"barcode" db:"barcode"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Unit        string    `json:"unit" db:"unit"`
	Total       float64   `json:"total" db:"total"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type ItemNew struct {
	TripID      string   `json:"groceryId" validate:"required"`
	Barcode     string   `json:"barcode" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Quantity    int      `json:"quantity" validate:"required,gt=0"`
	Unit        string   `json:"unit" validate:"required,oneof=kg pc g lb"`
	Total       *float64 `json:"total" validate:"omitempty,gte=0"`
}

type ItemUp struct {
	Barcode     *string  `json:"barcode" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gt=0"`
	Unit        *string  `json:"unit" validate:"omitempty,oneof=kg pc g lb"`
	Total       *float64 `json:"total" validate:"omitempty,gte=0"`
}
