package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/mlagunzad/pushcart/api"
	"github.com/mlagunzad/pushcart/config"
	"github.com/mlagunzad/pushcart/database"
	"github.com/mlagunzad/pushcart/rate"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

// TestEnv runs the whole API against a disposable postgres container.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	client *http.Client
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	_ = res.Expire(600)
	t.Cleanup(func() { _ = pool.Purge(res) })

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       "localhost:" + res.GetPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}
		return db.Ping()
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:        log,
		DB:         db,
		Session:    session,
		LoginLimit: rate.NewLimiter(1000, 100, 1000),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("building cookie jar: %w", err)
	}

	return &TestEnv{
		DB:     db,
		Server: srv,
		URL:    srv.URL,
		client: &http.Client{Jar: jar},
	}, nil
}

// Client keeps session cookies across requests.
func (te *TestEnv) Client() *http.Client {
	return te.client
}

func (te *TestEnv) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, te.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := te.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}

	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// decode checks the status code, unwraps the response envelope and
// unmarshals its data into out. Pass a nil out to only check the code.
func decode(t *testing.T, w *http.Response, wantCode int, out interface{}) envelope {
	t.Helper()
	defer w.Body.Close()

	if w.StatusCode != wantCode {
		raw, _ := io.ReadAll(w.Body)
		t.Fatalf("expected status code %d, got %s: %s", wantCode, w.Status, raw)
	}

	if w.StatusCode == http.StatusNoContent {
		return envelope{}
	}

	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decoding response data: %v", err)
		}
	}

	return env
}
