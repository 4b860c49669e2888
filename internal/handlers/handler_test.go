// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"newsdesk/internal/cache"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/models"
	"newsdesk/internal/router"
	"newsdesk/internal/store"
	"newsdesk/internal/token"
)

// mockNotifier records every dispatched notification for assertions.
type mockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	Recipients []string
	Subject    string
	Body       string
}

func (m *mockNotifier) Notify(recipients []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{Recipients: recipients, Subject: subject, Body: body})
	return nil
}

func (m *mockNotifier) Calls() []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifyCall(nil), m.calls...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "newsdesk")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "newsdesk")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testFeedCache backs the feed cache with an in-process Redis.
func testFeedCache(t *testing.T) *cache.FeedCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewFeedCache(client, time.Minute)
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Users    *store.UserStore
	Articles *store.ArticleStore
	Tokens   *token.Service
	Notifier *mockNotifier
	Router   http.Handler
}

// newTestEnv creates a complete test environment with the full router, an
// in-process feed cache, and a recording notifier. Storage stays nil, so
// image uploads are skipped.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	notifier := &mockNotifier{}
	feed := testFeedCache(t)

	usersH := handlers.NewUsers(userStore, tokens)
	newsH := handlers.NewNews(articleStore, userStore, nil, notifier, feed)

	return &testEnv{
		DB:       db,
		Users:    userStore,
		Articles: articleStore,
		Tokens:   tokens,
		Notifier: notifier,
		Router:   router.New(tokens, usersH, newsH, nil),
	}
}

// createUser inserts a user directly through the store and registers cleanup.
func (env *testEnv) createUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	u, err := env.Users.Create(email, password, role)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	t.Cleanup(func() { env.deleteUser(t, u.ID) })
	return u
}

// deleteUser removes a user and everything referencing it.
func (env *testEnv) deleteUser(t *testing.T, id uuid.UUID) {
	t.Helper()
	env.DB.Exec("DELETE FROM comments WHERE user_id = $1", id)
	env.DB.Exec("DELETE FROM comments WHERE article_id IN (SELECT id FROM articles WHERE author_id = $1)", id)
	env.DB.Exec("DELETE FROM articles WHERE author_id = $1", id)
	env.DB.Exec("DELETE FROM users WHERE id = $1", id)
}

// tokenFor issues a signed token for the given user.
func (env *testEnv) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	signed, err := env.Tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

// do sends a request through the full router. A non-empty token goes on
// the Authorization header; a non-nil body is JSON-encoded.
func (env *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// envelope is the standard response body shape.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

// decodeEnvelope unmarshals the standard response envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

// uniqueEmail generates a collision-free test address.
func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8] + "@handlertest.local"
}
