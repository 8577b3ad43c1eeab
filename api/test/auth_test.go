package test

import (
	"net/http"
	"testing"

	"github.com/mlagunzad/pushcart/core/user"
)

type authTest struct {
	*TestEnv
}

func TestAuth(t *testing.T) {
	env, err := NewTestEnv(t, "auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	at := &authTest{env}

	const email = "maria@example.com"
	const pass = "kapit-bisig-123"

	w := at.request(t, http.MethodGet, "/users/current", nil)
	decode(t, w, http.StatusUnauthorized, nil)

	// Mismatched confirmation never reaches the store.
	w = at.request(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name": "Maria", "email": email, "password": pass, "passwordConfirm": "different-123",
	})
	decode(t, w, http.StatusBadRequest, nil)

	signedUp := at.signupOK(t, "Maria", email, pass)
	if signedUp.Email != email {
		t.Fatalf("unexpected signup response: %+v", signedUp)
	}

	// Signup logs the user in.
	current := at.currentOK(t)
	if current.ID != signedUp.ID {
		t.Fatalf("expected current user %s, got %s", signedUp.ID, current.ID)
	}

	w = at.request(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name": "Maria Again", "email": email, "password": pass, "passwordConfirm": pass,
	})
	decode(t, w, http.StatusConflict, nil)

	w = at.request(t, http.MethodPost, "/auth/logout", nil)
	decode(t, w, http.StatusNoContent, nil)

	w = at.request(t, http.MethodGet, "/users/current", nil)
	decode(t, w, http.StatusUnauthorized, nil)

	w = at.request(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email": email, "password": "wrong-password",
	})
	decode(t, w, http.StatusUnauthorized, nil)

	w = at.request(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email": email, "password": pass,
	})
	var data struct {
		User user.User `json:"user"`
	}
	decode(t, w, http.StatusOK, &data)

	current = at.currentOK(t)
	if current.ID != data.User.ID {
		t.Fatalf("expected current user %s, got %s", data.User.ID, current.ID)
	}
}

func (at *authTest) signupOK(t *testing.T, name, email, pass string) user.User {
	t.Helper()

	w := at.request(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"name": name, "email": email, "password": pass, "passwordConfirm": pass,
	})

	var data struct {
		User user.User `json:"user"`
	}
	decode(t, w, http.StatusCreated, &data)

	return data.User
}

func (at *authTest) currentOK(t *testing.T) user.User {
	t.Helper()

	w := at.request(t, http.MethodGet, "/users/current", nil)

	var data struct {
		User user.User `json:"user"`
	}
	decode(t, w, http.StatusOK, &data)

	return data.User
}
