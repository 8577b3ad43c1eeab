package test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mlagunzad/pushcart/core/trip"
	"github.com/mlagunzad/pushcart/validate"
)

type tripTest struct {
	*TestEnv
}

func TestTrip(t *testing.T) {
	env, err := NewTestEnv(t, "trip_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	tt := &tripTest{env}
	it := &itemTest{env}

	// No trips yet: the report must signal it, not return an empty array.
	w := tt.request(t, http.MethodGet, "/grocery/previous-carts", nil)
	env404 := decode(t, w, http.StatusNotFound, nil)
	if env404.Status != "fail" || env404.Message != "no previous carts found" {
		t.Fatalf("unexpected empty-report body: %+v", env404)
	}

	budget := 30.0
	tripA := tt.createTripOK(t, "SM Hypermarket", &budget)
	tripB := tt.createTripOK(t, "Puregold", nil)

	got := tt.getTripOK(t, tripA.ID)
	if got.StoreName != "SM Hypermarket" || got.Budget == nil || *got.Budget != 30 {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if got.CheckoutDate != nil {
		t.Fatal("a fresh trip must not be checked out")
	}

	w = tt.request(t, http.MethodGet, "/grocery/"+validate.GenerateID(), nil)
	decode(t, w, http.StatusNotFound, nil)

	newName := "SM Hypermarket Pasig"
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripA.ID, map[string]interface{}{"storeName": newName})
	var up struct {
		Grocery trip.Trip `json:"grocery"`
	}
	decode(t, w, http.StatusOK, &up)
	if up.Grocery.StoreName != newName {
		t.Fatalf("expected renamed trip, got %+v", up.Grocery)
	}

	// A blank store name must not wipe the field.
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripA.ID, map[string]interface{}{"storeName": ""})
	decode(t, w, http.StatusBadRequest, nil)
	if got := tt.getTripOK(t, tripA.ID); got.StoreName != newName {
		t.Fatalf("blank rename must be rejected, got %q", got.StoreName)
	}

	it.createItemOK(t, newItem(tripA.ID, "4800016644931", "Pancit Canton", 10, 2))
	it.createItemOK(t, newItem(tripA.ID, "4800016644948", "Corned Beef", 5, 3))

	rows := tt.previousCartsOK(t)
	want := []trip.Summary{
		{ID: tripB.ID, StoreName: "Puregold", Budget: nil, TotalAmount: 0},
		{ID: tripA.ID, StoreName: newName, Budget: &budget, TotalAmount: 35},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("unexpected report rows: %s", diff)
	}

	// Short cash tender blocks checkout.
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripA.ID, checkoutBody("cash", 20))
	decode(t, w, http.StatusUnprocessableEntity, nil)

	// A client-sent total that disagrees with the cart is rejected.
	body := checkoutBody("cash", 50)
	body["totalAmount"] = 34.0
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripA.ID, body)
	decode(t, w, http.StatusUnprocessableEntity, nil)

	closed := tt.checkoutOK(t, tripA.ID, "cash", 50)
	if closed.CheckoutDate == nil {
		t.Fatal("checkout must close the trip")
	}
	if closed.TotalAmount == nil || *closed.TotalAmount != 35 {
		t.Fatalf("expected recomputed total 35, got %+v", closed.TotalAmount)
	}
	if closed.ChangeDue == nil || *closed.ChangeDue != 15 {
		t.Fatalf("expected change 15, got %+v", closed.ChangeDue)
	}

	// Closed trips reject further edits and item mutations.
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripA.ID, checkoutBody("cash", 100))
	decode(t, w, http.StatusConflict, nil)

	w = tt.request(t, http.MethodPost, "/grocery/new-item", newItem(tripA.ID, "4800016644955", "Toyo", 8, 1))
	decode(t, w, http.StatusConflict, nil)

	// Deleting a trip removes its items too, and repeating is a no-op.
	w = tt.request(t, http.MethodDelete, "/grocery/"+tripB.ID, nil)
	decode(t, w, http.StatusNoContent, nil)
	w = tt.request(t, http.MethodDelete, "/grocery/"+tripB.ID, nil)
	decode(t, w, http.StatusNoContent, nil)

	w = tt.request(t, http.MethodGet, "/grocery/"+tripB.ID+"/items", nil)
	decode(t, w, http.StatusNotFound, nil)

	rows = tt.previousCartsOK(t)
	if len(rows) != 1 || rows[0].ID != tripA.ID {
		t.Fatalf("expected only trip A in the report, got %+v", rows)
	}

	// A client that sums line totals in floats sends 40.199999999999996
	// for a 33.30 + 6.90 cart; that must still check out as 40.20.
	tripC := tt.createTripOK(t, "Landers", nil)
	it.createItemOK(t, newItem(tripC.ID, "4800016644962", "Liempo", 33.30, 1))
	it.createItemOK(t, newItem(tripC.ID, "4800016644979", "Calamansi", 6.90, 1))

	body = checkoutBody("cash", 50)
	body["totalAmount"] = 33.30 + 6.90
	w = tt.request(t, http.MethodPatch, "/grocery/"+tripC.ID, body)
	var closedC struct {
		Grocery trip.Trip `json:"grocery"`
	}
	decode(t, w, http.StatusOK, &closedC)
	if closedC.Grocery.TotalAmount == nil || *closedC.Grocery.TotalAmount != 40.20 {
		t.Fatalf("expected total 40.20, got %+v", closedC.Grocery.TotalAmount)
	}
	if closedC.Grocery.ChangeDue == nil || *closedC.Grocery.ChangeDue != 9.80 {
		t.Fatalf("expected change 9.80, got %+v", closedC.Grocery.ChangeDue)
	}
}

func (tt *tripTest) createTripOK(t *testing.T, store string, budget *float64) trip.Trip {
	t.Helper()

	body := map[string]interface{}{"storeName": store}
	if budget != nil {
		body["budget"] = *budget
	}

	w := tt.request(t, http.MethodPost, "/grocery/new-grocery", body)

	var data struct {
		Grocery trip.Trip `json:"grocery"`
	}
	decode(t, w, http.StatusCreated, &data)

	return data.Grocery
}

func (tt *tripTest) getTripOK(t *testing.T, id string) trip.Trip {
	t.Helper()

	w := tt.request(t, http.MethodGet, "/grocery/"+id, nil)

	var data struct {
		Grocery trip.Trip `json:"grocery"`
	}
	decode(t, w, http.StatusOK, &data)

	return data.Grocery
}

func (tt *tripTest) previousCartsOK(t *testing.T) []trip.Summary {
	t.Helper()

	w := tt.request(t, http.MethodGet, "/grocery/previous-carts", nil)

	var data struct {
		PreviousCarts []trip.Summary `json:"previousCarts"`
	}
	decode(t, w, http.StatusOK, &data)

	return data.PreviousCarts
}

func (tt *tripTest) checkoutOK(t *testing.T, id string, method string, tendered float64) trip.Trip {
	t.Helper()

	w := tt.request(t, http.MethodPatch, "/grocery/"+id, checkoutBody(method, tendered))

	var data struct {
		Grocery trip.Trip `json:"grocery"`
	}
	decode(t, w, http.StatusOK, &data)

	return data.Grocery
}

func checkoutBody(method string, tendered float64) map[string]interface{} {
	return map[string]interface{}{
		"checkoutDate":   time.Now().UTC(),
		"paidWith":       method,
		"amountTendered": tendered,
	}
}
