package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/stockscope/config"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Providers: config.ProvidersConfig{
			FMP:          config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
			Finnhub:      config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
			AlphaVantage: config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
			CNN:          config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
			Timeout:      2 * time.Second,
			MaxParallel:  4,
		},
		Postgres: config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     54329, // unlikely mapped
			User:     "x",
			Password: "y",
			DBName:   "z",
			SSLMode:  "disable",
		},
	}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	db, err := InitPostgres(testConfig())
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

func TestInitializeApp_WatchlistDisabled(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		t.Fatalf("database must not be opened when the watchlist is disabled")
		return nil, nil
	}
	t.Cleanup(func() { postgresOpener = old })

	router, cleanup, err := InitializeApp(testConfig())
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	if w := serve(t, router, http.MethodGet, "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}
	if w := serve(t, router, http.MethodGet, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
	if w := serve(t, router, http.MethodGet, "/api/v1/watchlist"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("watchlist status=%d", w.Code)
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("connection refused") }
	t.Cleanup(func() { postgresOpener = old })

	cfg := testConfig()
	cfg.Watchlist.Enabled = true

	r, cleanup, err := InitializeApp(cfg)
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_MigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectClose()

	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return errors.New("bad migration") }
	t.Cleanup(func() {
		postgresOpener, migrator = oldOpen, oldMigrate
	})

	cfg := testConfig()
	cfg.Watchlist.Enabled = true
	cfg.Watchlist.AutoMigrate = true

	if _, _, err := InitializeApp(cfg); err == nil {
		t.Fatalf("expected migration error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// readyz pings once, cleanup closes
	mock.ExpectPing()
	mock.ExpectQuery("SELECT symbol, notes, added_at FROM watchlist").
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "notes", "added_at"}).
			AddRow("AAPL", "core", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	mock.ExpectClose()

	migrated := false
	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { migrated = true; return nil }
	t.Cleanup(func() {
		postgresOpener, migrator = oldOpen, oldMigrate
	})

	cfg := testConfig()
	cfg.Watchlist.Enabled = true
	cfg.Watchlist.AutoMigrate = true

	router, cleanup, err := InitializeApp(cfg)
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	if !migrated {
		t.Fatalf("expected migrations to run")
	}

	if w := serve(t, router, http.MethodGet, "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}
	if w := serve(t, router, http.MethodGet, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}

	w := serve(t, router, http.MethodGet, "/api/v1/watchlist")
	if w.Code != http.StatusOK {
		t.Fatalf("watchlist status=%d body=%s", w.Code, w.Body.String())
	}
	var items []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 || items[0]["symbol"] != "AAPL" || items[0]["addedAt"] != "2025-01-02T00:00:00Z" {
		t.Fatalf("unexpected items: %v", items)
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_FearGreedEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/index/fearandgreed/graphdata" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"fear_and_greed":{"score":61.2,"rating":"greed","timestamp":"2025-03-03T00:00:00+00:00","previous_close":58.1}}`))
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Providers.CNN.BaseURL = upstream.URL

	router, cleanup, err := InitializeApp(cfg)
	if err != nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	w := serve(t, router, http.MethodGet, "/api/v1/fear-greed")
	if w.Code != http.StatusOK {
		t.Fatalf("fear-greed status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Score         *float64 `json:"score"`
		Rating        *string  `json:"rating"`
		PreviousClose *float64 `json:"previousClose"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Score == nil || *body.Score != 61.2 || body.Rating == nil || *body.Rating != "greed" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInitializeApp_UnkeyedProviderReportsDetails(t *testing.T) {
	router, cleanup, err := InitializeApp(testConfig())
	if err != nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	w := serve(t, router, http.MethodGet, "/api/v1/dividends?symbol=KO")
	if w.Code != http.StatusNotFound {
		t.Fatalf("dividends status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Details) == 0 {
		t.Fatalf("expected per-provider details, got %s", w.Body.String())
	}
}
