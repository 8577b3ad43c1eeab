package claims

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	want := Claims{UserID: "u-1", Role: RoleUser}

	ctx := Set(context.Background(), want)

	got, err := Get(ctx)
	if err != nil {
		t.Fatalf("getting claims: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMissing(t *testing.T) {
	if _, err := Get(context.Background()); err == nil {
		t.Fatal("expected an error on a context without claims")
	}
}
