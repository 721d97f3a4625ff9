//go:build integration
// +build integration

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/stockscope/config"
	"github.com/guttosm/stockscope/internal/app"
)

func startPG(t *testing.T) (host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "stockscope",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=stockscope sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	terminate = func() { _ = c.Terminate(context.Background()) }
	return h, mp, terminate
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_E2E_Watchlist(t *testing.T) {
	host, port, term := startPG(t)
	defer term()

	// Point application config to containerized DB; migrations run at startup
	cfg := config.Config{
		Server:    config.ServerConfig{Port: "0"},
		Providers: config.ProvidersConfig{Timeout: time.Second, MaxParallel: 2},
		Watchlist: config.WatchlistConfig{Enabled: true, AutoMigrate: true},
		Postgres: config.PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			User:     "postgres",
			Password: "postgres",
			DBName:   "stockscope",
			SSLMode:  "disable",
		},
	}

	router, cleanup, err := app.InitializeApp(cfg)
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	if w := do(router, http.MethodGet, "/readyz", nil); w.Code != http.StatusOK {
		t.Fatalf("readyz: %d %s", w.Code, w.Body.String())
	}

	w := do(router, http.MethodPost, "/api/v1/watchlist", map[string]string{"symbol": "aapl", "notes": "core holding"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: %d %s", w.Code, w.Body.String())
	}
	var item struct {
		Symbol  string `json:"symbol"`
		Notes   string `json:"notes"`
		AddedAt string `json:"addedAt"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("json: %v", err)
	}
	if item.Symbol != "AAPL" || item.Notes != "core holding" || item.AddedAt == "" {
		t.Fatalf("unexpected item: %+v", item)
	}

	if w := do(router, http.MethodPost, "/api/v1/watchlist", map[string]string{"symbol": "AAPL"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: want 409 got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/v1/watchlist", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var items []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(items) != 1 || items[0]["symbol"] != "AAPL" {
		t.Fatalf("unexpected list: %v", items)
	}

	if w := do(router, http.MethodDelete, "/api/v1/watchlist/aapl", nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove: %d %s", w.Code, w.Body.String())
	}
	if w := do(router, http.MethodDelete, "/api/v1/watchlist/aapl", nil); w.Code != http.StatusNotFound {
		t.Fatalf("remove again: want 404 got %d", w.Code)
	}
}
