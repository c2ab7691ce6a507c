package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumina-dev/lumina"
	"github.com/lumina-dev/lumina/pkg/deferred"
	"github.com/lumina-dev/lumina/pkg/hydrate"
	"github.com/lumina-dev/lumina/pkg/ssr"
	"github.com/lumina-dev/lumina/pkg/wire"
)

// appRoutes is the definition tree both halves of the test share, exactly as
// a real application would compile the same routes on server and client.
func appRoutes(t *testing.T) *lumina.Routes {
	t.Helper()
	routes, err := lumina.BuildRoutes(&lumina.Definition{
		Path: "/",
		Main: &lumina.Module{Component: func() {}},
		Index: func(ctx context.Context) (*lumina.Module, error) {
			return &lumina.Module{Component: func() {}}, nil
		},
		Children: []*lumina.Definition{
			{Path: "dashboard", MainLazy: func(ctx context.Context) (*lumina.Module, error) {
				return &lumina.Module{Component: func() {}}, nil
			}},
		},
	})
	if err != nil {
		t.Fatalf("BuildRoutes returned error: %v", err)
	}
	return routes
}

// renderHandler runs loaders, encodes the payload, and serves the page with
// the payload embedded.
func renderHandler(t *testing.T, cfg lumina.Config) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		slow := deferred.Resolved(map[string]any{"visits": 42})

		payload, err := lumina.BuildPayload(r.Context(), lumina.NewEncoder(cfg),
			[]lumina.Match{{ID: "0"}, {ID: "0-1"}},
			map[string]any{
				"0":   map[string]any{"user": map[string]any{"name": "Ada"}},
				"0-1": map[string]any{"stats": slow},
			},
			nil,
			map[string]error{"0-1": wire.NewHTTPError(403, "forbidden")},
		)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ssr.RenderPage(w, "Demo", cfg.HydrationGlobal, payload); err != nil {
			t.Errorf("RenderPage returned error: %v", err)
		}
	}
}

// TestHydrationOverChi renders a page through a chi-mounted handler, fetches
// it, extracts the embedded payload, and resumes it with a coordinator. This
// is the full server-to-client round trip.
func TestHydrationOverChi(t *testing.T) {
	cfg := lumina.Config{Scheduler: hydrate.SyncScheduler{}}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/dashboard", renderHandler(t, cfg))

	ts := httptest.NewServer(r)
	defer ts.Close()

	// Client side: fetch the page.
	resp, err := http.Get(ts.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET returned error: %v", err)
	}
	page, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body: %s", resp.StatusCode, page)
	}

	raw, ok := ssr.ExtractPayload(page, "")
	if !ok {
		t.Fatalf("page carries no payload: %s", page)
	}

	// Resume.
	var committed *lumina.Handoff
	handoff, err := lumina.Bootstrap(context.Background(), cfg, appRoutes(t),
		lumina.NewSource(raw),
		func(h *lumina.Handoff) { committed = h })
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if committed != handoff {
		t.Error("commit should receive the bootstrap handoff")
	}

	// Matched lazy route resolved during bootstrap.
	if handoff.ObjectMap["0-1"].Lazy != nil {
		t.Error("dashboard lazy placeholder should be cleared")
	}

	// Immediate root data survives the trip.
	root := handoff.State.LoaderData["0"].(wire.FieldSet)
	if user := root["user"].(map[string]any); user["name"] != "Ada" {
		t.Errorf("user = %v", user)
	}

	// The deferred field resumes as a settled pending handle.
	dash := handoff.State.LoaderData["0-1"].(wire.FieldSet)
	stats := dash["stats"].(*deferred.Deferred)
	v, err := stats.Await(context.Background())
	if err != nil {
		t.Fatalf("stats Await returned error: %v", err)
	}
	if v.(map[string]any)["visits"] != float64(42) {
		t.Errorf("visits = %v", v)
	}

	// The route error reconstructs with status and message.
	var httpErr *lumina.HTTPError
	if !errors.As(handoff.State.Errors["0-1"], &httpErr) || httpErr.Status != 403 {
		t.Errorf("Errors[0-1] = %v, want 403", handoff.State.Errors["0-1"])
	}
}

// TestHydrationEmptyPage covers a page rendered with no payload at all: the
// coordinator must still hand off with empty state.
func TestHydrationEmptyPage(t *testing.T) {
	cfg := lumina.Config{Scheduler: hydrate.SyncScheduler{}}

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "<!DOCTYPE html><html><body></body></html>")
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET returned error: %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	raw, _ := ssr.ExtractPayload(page, "")
	handoff, err := lumina.Bootstrap(context.Background(), cfg, appRoutes(t),
		lumina.NewSource(raw), nil)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(handoff.State.Matches) != 0 {
		t.Errorf("Matches = %v, want empty", handoff.State.Matches)
	}
}

// TestPayloadStableOverJSON re-marshals an extracted payload and checks the
// deferred markers and error descriptors survive unchanged.
func TestPayloadStableOverJSON(t *testing.T) {
	cfg := lumina.Config{Scheduler: hydrate.SyncScheduler{}}

	rec := httptest.NewRecorder()
	renderHandler(t, cfg)(rec, httptest.NewRequest("GET", "/dashboard", nil))

	raw, ok := ssr.ExtractPayload(rec.Body.Bytes(), "")
	if !ok {
		t.Fatal("page carries no payload")
	}

	var p lumina.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	again, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var p2 lumina.Payload
	if err := json.Unmarshal(again, &p2); err != nil {
		t.Fatalf("second Unmarshal returned error: %v", err)
	}
	fields := p2.LoaderData["0-1"].Value.(map[string]any)
	stats := fields["stats"].(map[string]any)
	if stats["kind"] != "deferred" {
		t.Errorf("deferred marker lost: %+v", stats)
	}
	if p2.Errors["0-1"].Status != 403 {
		t.Errorf("error descriptor lost: %+v", p2.Errors["0-1"])
	}
}
