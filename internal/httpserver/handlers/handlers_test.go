package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/storage"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/store"
)

type fakeProber struct {
	result probe.Result
	probed []string
}

func (f *fakeProber) Probe(_ context.Context, address string) probe.Result {
	f.probed = append(f.probed, address)
	return f.result
}

func testSeed() []*domain.Entry {
	return []*domain.Entry{
		{ID: "alpha", Name: "Alpha PvP", Address: "wss://alpha.example", Tags: []domain.Tag{domain.TagPvP}, VoteCount: 10},
		{ID: "beta", Name: "Beta Survival", Address: "wss://beta.example", Tags: []domain.Tag{domain.TagSurvival}, VoteCount: 50},
	}
}

// testDeps builds a Deps backed by file storage in a temp dir and a
// store initialized with the test seed.
func testDeps(t *testing.T) (deps.Deps, *fakeProber) {
	t.Helper()

	slots, err := storage.NewFileSlots(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSlots: %v", err)
	}
	st := store.New(slots, logger.Nop())
	st.Initialize(context.Background(), testSeed())

	fp := &fakeProber{result: probe.Result{Outcome: probe.Online, CheckedAt: time.Now()}}
	d := deps.Deps{
		Logger:       logger.Nop(),
		StartTime:    time.Now(),
		TimeNow:      time.Now,
		Store:        st,
		Prober:       fp,
		StatusCache:  probe.NewStatusCache(),
		SweepTrigger: make(chan struct{}, 1),
	}
	return d, fp
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return v
}

func TestListServers(t *testing.T) {
	d, _ := testDeps(t)
	h := ListServers(d)

	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{
			name:    "no filters, name sort",
			target:  "/servers",
			wantIDs: []string{"alpha", "beta"},
		},
		{
			name:    "text filter",
			target:  "/servers?q=survival",
			wantIDs: []string{"beta"},
		},
		{
			name:    "tag filter",
			target:  "/servers?tags=PvP",
			wantIDs: []string{"alpha"},
		},
		{
			name:    "votes sort",
			target:  "/servers?sort=votes",
			wantIDs: []string{"beta", "alpha"},
		},
		{
			name:    "no match",
			target:  "/servers?q=nothinghere",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			resp := decodeBody[listResponse](t, rec)
			if resp.Total != len(tt.wantIDs) {
				t.Fatalf("total = %d, want %d", resp.Total, len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if resp.Servers[i].ID != want {
					t.Errorf("servers[%d].ID = %q, want %q", i, resp.Servers[i].ID, want)
				}
			}
		})
	}
}

func TestAddServer(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid entry",
			body:       `{"name":"My Server","address":"wss://mine.example","tags":["PvP"]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"address":"wss://mine.example"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "bad scheme",
			body:       `{"name":"My Server","address":"ws://mine.example"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown tag",
			body:       `{"name":"My Server","address":"wss://mine.example","tags":["Bogus"]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "not json",
			body:       `{{{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := testDeps(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/servers", strings.NewReader(tt.body))
			AddServer(d).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			created := decodeBody[domain.Entry](t, rec)
			if created.ID == "" {
				t.Error("created entry has no id")
			}
			if !created.IsUserSupplied {
				t.Error("created entry not marked user-supplied")
			}
			// The new entry lands at the top of the directory.
			if snap := d.Store.Snapshot(); snap[0].ID != created.ID {
				t.Errorf("new entry not first, got %q", snap[0].ID)
			}
		})
	}
}

func TestImport(t *testing.T) {
	d, _ := testDeps(t)

	body := `[
		{"name":"Imported","address":"wss://imported.example"},
		{"name":"Dropped","address":"http://dropped.example"}
	]`
	rec := httptest.NewRecorder()
	Import(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[importResponse](t, rec)
	if resp.Imported != 1 {
		t.Errorf("imported = %d, want 1 (invalid address dropped)", resp.Imported)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	Import(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(`{"name":"x"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if d.Store.Count() != 2 {
		t.Errorf("store mutated by rejected import: %d entries", d.Store.Count())
	}
}

func TestExport(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	Export(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "eaglercraft-servers.json") {
		t.Errorf("Content-Disposition = %q, want the download filename", got)
	}

	var entries []*domain.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("export body is not a JSON array: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("export = %d entries, want 2", len(entries))
	}
}

func TestProbeServer(t *testing.T) {
	d, fp := testDeps(t)

	r := chi.NewRouter()
	r.Post("/servers/{id}/probe", ProbeServer(d))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/servers/alpha/probe", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(fp.probed) != 1 || fp.probed[0] != "wss://alpha.example" {
		t.Errorf("prober called with %v, want the entry address", fp.probed)
	}
	resp := decodeBody[probe.Result](t, rec)
	if resp.Outcome != probe.Online {
		t.Errorf("outcome = %q, want online", resp.Outcome)
	}
	if cached, ok := d.StatusCache.Get("alpha"); !ok || cached.Outcome != probe.Online {
		t.Error("probe result not recorded in status cache")
	}
}

func TestProbeServerUnknownID(t *testing.T) {
	d, fp := testDeps(t)

	r := chi.NewRouter()
	r.Post("/servers/{id}/probe", ProbeServer(d))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/servers/ghost/probe", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if len(fp.probed) != 0 {
		t.Error("prober called for unknown id")
	}
}

func TestSweepTriggerAndBackpressure(t *testing.T) {
	d, _ := testDeps(t)
	h := Sweep(d)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sweep", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first trigger status = %d, want 202", rec.Code)
	}

	// Nothing drains the channel here, so a second trigger is refused.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sweep", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second trigger status = %d, want 429", rec.Code)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	GetTheme(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	if got := decodeBody[themePayload](t, rec); got.Theme != store.ThemeDark {
		t.Errorf("default theme = %q, want dark", got.Theme)
	}

	rec = httptest.NewRecorder()
	SetTheme(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"theme":"light"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("SetTheme status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	GetTheme(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	if got := decodeBody[themePayload](t, rec); got.Theme != store.ThemeLight {
		t.Errorf("theme after update = %q, want light", got.Theme)
	}
}

func TestSetThemeRejectsUnknownSlotValue(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	SetTheme(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"theme":"neon"}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	d, _ := testDeps(t)
	d.Version = "v1.2.3"

	rec := httptest.NewRecorder()
	Healthz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[healthzResponse](t, rec)
	if resp.Status != "ok" || resp.Version != "v1.2.3" {
		t.Errorf("healthz = %+v", resp)
	}
}

func TestReadyz(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	Readyz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status with seeded store = %d, want 200", rec.Code)
	}

	// An empty store is not ready yet.
	slots, err := storage.NewFileSlots(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSlots: %v", err)
	}
	d.Store = store.New(slots, logger.Nop())
	rec = httptest.NewRecorder()
	Readyz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status with empty store = %d, want 503", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	d, _ := testDeps(t)
	d.StatusCache.Set("alpha", probe.Result{Outcome: probe.Unreachable, CheckedAt: time.Now()})
	d.StatusCache.MarkSweep(time.Now())

	rec := httptest.NewRecorder()
	Status(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[statusResponse](t, rec)
	if resp.Entries != 2 {
		t.Errorf("entries = %d, want 2", resp.Entries)
	}
	if resp.LastSweep == "never" {
		t.Error("last_sweep still \"never\" after MarkSweep")
	}
	if resp.Results["alpha"].Outcome != probe.Unreachable {
		t.Errorf("results[alpha] = %+v", resp.Results["alpha"])
	}
	if s := resp.Components["storage"]; !s.OK || s.Mode != "file" {
		t.Errorf("storage component = %+v", s)
	}
}
