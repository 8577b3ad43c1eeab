package cart

import "testing"

func TestGrandTotal(t *testing.T) {
	totals := []float64{
		ItemTotal(10, 2),
		ItemTotal(5, 3),
	}

	if got := GrandTotal(totals); got != 35 {
		t.Fatalf("expected grand total 35, got %v", got)
	}

	if got := GrandTotal(nil); got != 0 {
		t.Fatalf("expected empty grand total 0, got %v", got)
	}
}

func TestItemTotalRounding(t *testing.T) {
	if got := ItemTotal(0.1, 3); got != 0.3 {
		t.Fatalf("expected 0.30, got %v", got)
	}

	if !Matches(0.3, 0.1, 3) {
		t.Fatal("expected 0.30 to match 0.1 x 3")
	}

	if Matches(35.01, 10, 2) {
		t.Fatal("expected 35.01 to mismatch 10 x 2")
	}
}

func TestSameAmount(t *testing.T) {
	// A client summing 33.30 + 6.90 in floats gets 40.199999999999996;
	// that must still count as 40.20.
	clientSum := 33.30 + 6.90

	if !SameAmount(clientSum, 40.20) {
		t.Fatalf("expected %v to equal 40.20", clientSum)
	}

	if SameAmount(40.19, 40.20) {
		t.Fatal("expected a full centavo off to mismatch")
	}
}

func TestOverBudget(t *testing.T) {
	budget := 30.0

	over, deficit := OverBudget(&budget, 35)
	if !over || deficit != 5 {
		t.Fatalf("expected over by 5, got over=%v deficit=%v", over, deficit)
	}

	over, deficit = OverBudget(&budget, 30)
	if over || deficit != 0 {
		t.Fatalf("expected within budget, got over=%v deficit=%v", over, deficit)
	}

	over, _ = OverBudget(nil, 1000)
	if over {
		t.Fatal("nil budget must never be over")
	}
}

func TestCheckout(t *testing.T) {
	if got := ChangeDue(150, 100); got != 50 {
		t.Fatalf("expected change 50, got %v", got)
	}

	if got := ChangeDue(80, 100); got != 0 {
		t.Fatalf("expected change 0 on short tender, got %v", got)
	}

	if CanCheckout(PayCash, 80, 100) {
		t.Fatal("cash checkout with short tender must be blocked")
	}

	if !CanCheckout(PayCash, 100, 100) {
		t.Fatal("exact cash tender must check out")
	}

	if !CanCheckout(PayCard, 0, 100) {
		t.Fatal("card checkout must not require tender")
	}
}
