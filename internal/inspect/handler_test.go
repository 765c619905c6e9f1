package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/appengine-ltd/timberline/internal/game"
)

func newTestRouter(t *testing.T) (http.Handler, *game.Session) {
	t.Helper()
	cfg := game.DefaultWorldConfig()
	cfg.Spawner.Target = 6
	cfg.Seed = 19
	w, err := game.NewWorld(cfg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	session := game.NewSession(w)
	return NewRouter(session), session
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealthReportsPopulation(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	var report HealthReport
	decode(t, rec, &report)
	if report.Status != "ok" || report.Trees != 6 || report.Target != 6 {
		t.Fatalf("unexpected health report %+v", report)
	}
}

func TestChopBlocksSpotAndDropsLog(t *testing.T) {
	h, session := newTestRouter(t)
	id := session.Snapshot().Trees[0].ID
	path := "/trees/" + strconvID(id) + "/chop"

	rec := do(t, h, http.MethodPost, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var action TreeAction
	decode(t, rec, &action)
	if action.ID != id || !action.Removed || action.Action != "chopped" {
		t.Fatalf("unexpected action %+v", action)
	}

	var spots []game.BlockedSpot
	decode(t, do(t, h, http.MethodGet, "/spots", ""), &spots)
	if len(spots) != 1 {
		t.Fatalf("expected one blocked spot, got %d", len(spots))
	}
	var logs []game.Log
	decode(t, do(t, h, http.MethodGet, "/logs", ""), &logs)
	if len(logs) != 1 {
		t.Fatalf("expected one log, got %d", len(logs))
	}
	var trees []game.Tree
	decode(t, do(t, h, http.MethodGet, "/trees", ""), &trees)
	if len(trees) != 5 {
		t.Fatalf("expected 5 trees before the next tick, got %d", len(trees))
	}

	if rec := do(t, h, http.MethodPost, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for second chop, got %d", rec.Code)
	}
}

func TestDeleteTreeIsIdempotent(t *testing.T) {
	h, session := newTestRouter(t)
	id := session.Snapshot().Trees[0].ID
	path := "/trees/" + strconvID(id)

	var first, second TreeAction
	decode(t, do(t, h, http.MethodDelete, path, ""), &first)
	decode(t, do(t, h, http.MethodDelete, path, ""), &second)
	if !first.Removed || second.Removed {
		t.Fatalf("expected only the first delete to remove, got %+v then %+v", first, second)
	}
	if n := len(session.Snapshot().Blocked); n != 0 {
		t.Fatalf("expected external destruction not to block a spot, got %d", n)
	}
}

func TestBadTreeIDRejected(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, path := range []string{"/trees/abc", "/trees/0"} {
		rec := do(t, h, http.MethodDelete, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
		var resp ErrorResponse
		decode(t, rec, &resp)
		if resp.Message == "" {
			t.Fatalf("%s: expected an error message", path)
		}
	}
}

func TestStormUprootsOldestTrees(t *testing.T) {
	h, session := newTestRouter(t)
	before := session.Snapshot().Trees
	rec := do(t, h, http.MethodPost, "/storm", `{"count": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var report StormReport
	decode(t, rec, &report)
	if len(report.Uprooted) != 2 || report.Uprooted[0] != before[0].ID || report.Uprooted[1] != before[1].ID {
		t.Fatalf("expected the two oldest trees uprooted, got %v", report.Uprooted)
	}
	if rec := do(t, h, http.MethodPost, "/storm", `{"count": 0}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty storm, got %d", rec.Code)
	}
}

func TestRunCommand(t *testing.T) {
	h, session := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/commands", `{"command": "wait 4s"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res game.CommandResult
	decode(t, rec, &res)
	if !res.Handled || res.SecondsAdvanced != 4 {
		t.Fatalf("unexpected command result %+v", res)
	}
	if got := session.Snapshot().Elapsed; got != 4 {
		t.Fatalf("expected 4s elapsed, got %.2f", got)
	}
	if rec := do(t, h, http.MethodPost, "/commands", `{"command": "dance"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown command, got %d", rec.Code)
	}
}

func TestGetWorldSnapshot(t *testing.T) {
	h, _ := newTestRouter(t)
	var snap game.WorldSnapshot
	decode(t, do(t, h, http.MethodGet, "/world", ""), &snap)
	if snap.Target != 6 || len(snap.Trees) != 6 {
		t.Fatalf("unexpected snapshot target=%d trees=%d", snap.Target, len(snap.Trees))
	}
	if snap.Chop.HoldTime != 4 {
		t.Fatalf("expected hold time to survive the round trip, got %v", snap.Chop.HoldTime)
	}
}

func TestWrongMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)
	if rec := do(t, h, http.MethodPost, "/world", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func strconvID(id game.TreeID) string {
	return strconv.FormatUint(uint64(id), 10)
}
