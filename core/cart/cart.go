// Package cart holds the money math shared by the item and trip handlers:
// line totals, the running grand total, budget standing and checkout change.
// Everything works on already-fetched values and rounds to centavos.
package cart

import "math"

const (
	PayCash    = "cash"
	PayCard    = "card"
	PayEwallet = "ewallet"
)

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotal derives a line total from unit price and quantity.
func ItemTotal(price float64, quantity int) float64 {
	return round(price * float64(quantity))
}

// SameAmount reports whether two money values agree within half a centavo.
// Client-side float sums drift below that; real mismatches do not.
func SameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// Matches reports whether a client-supplied total agrees with the derived
// one. Anything off by a centavo or more is a mismatch.
func Matches(total, price float64, quantity int) bool {
	return SameAmount(total, ItemTotal(price, quantity))
}

// GrandTotal sums line totals.
func GrandTotal(totals []float64) float64 {
	var sum float64
	for _, t := range totals {
		sum += t
	}
	return round(sum)
}

// OverBudget reports whether the grand total exceeds the budget and by how
// much. A nil budget means no limit.
func OverBudget(budget *float64, grandTotal float64) (bool, float64) {
	if budget == nil || grandTotal <= *budget {
		return false, 0
	}
	return true, round(grandTotal - *budget)
}

// ChangeDue is the cash change owed at checkout, never negative.
func ChangeDue(tendered, grandTotal float64) float64 {
	if tendered <= grandTotal {
		return 0
	}
	return round(tendered - grandTotal)
}

// CanCheckout gates the checkout: cash payments must tender at least the
// grand total, other methods are always payable in full.
func CanCheckout(method string, tendered, grandTotal float64) bool {
	if method != PayCash {
		return true
	}
	return tendered >= grandTotal
}
