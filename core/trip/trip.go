package trip

import "time"

// Trip is one shopping excursion. A nil budget means no limit; the payment
// columns stay null until checkout closes the trip.
type Trip struct {
	ID             string     `json:"id" db:"trip_id"`
	StoreName      string     `json:"storeName" db:"store_name"`
	Budget         *float64   `json:"budget" db:"budget"`
	CheckoutDate   *time.Time `json:"checkoutDate" db:"checkout_date"`
	TotalAmount    *float64   `json:"totalAmount,omitempty" db:"total_amount"`
	PaidWith       *string    `json:"paidWith,omitempty" db:"paid_with"`
	AmountTendered *float64   `json:"amountTendered,omitempty" db:"amount_tendered"`
	ChangeDue      *float64   `json:"changeDue,omitempty" db:"change_due"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

type TripNew struct {
	StoreName string   `json:"storeName" validate:"required"`
	Budget    *float64 `json:"budget" validate:"omitempty,gte=0"`
}

// TripUp covers both plain edits and the checkout payload: a body carrying
// checkoutDate is a checkout, anything else is an edit.
type TripUp struct {
	StoreName      *string    `json:"storeName" validate:"omitempty,min=1"`
	Budget         *float64   `json:"budget" validate:"omitempty,gte=0"`
	CheckoutDate   *time.Time `json:"checkoutDate"`
	TotalAmount    *float64   `json:"totalAmount" validate:"omitempty,gte=0"`
	PaidWith       *string    `json:"paidWith" validate:"omitempty,oneof=cash card ewallet"`
	AmountTendered *float64   `json:"amountTendered" validate:"omitempty,gte=0"`
}

// Summary is one row of the previous-carts report.
type Summary struct {
	ID          string   `json:"id" db:"trip_id"`
	StoreName   string   `json:"storeName" db:"store_name"`
	Budget      *float64 `json:"budget" db:"budget"`
	TotalAmount float64  `json:"totalAmount" db:"total_amount"`
}
