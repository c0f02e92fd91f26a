package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stonelantern/delvegen/internal/config"
	"github.com/stonelantern/delvegen/internal/database"
)

func testManager(t *testing.T, archive *database.Database) *Manager {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Evaluation.Candidates = 3
	cfg.Evaluation.MasterSeed = 42
	cfg.Dungeon.Iterations = 3
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return NewManager(cfg, archive)
}

func testServer(t *testing.T, archive *database.Database) (*Server, *httptest.Server) {
	t.Helper()
	s := New(config.DefaultServerConfig(), testManager(t, archive))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s decode error: %v", url, err)
		}
	}
}

func TestDungeonBeforeGeneration(t *testing.T) {
	_, ts := testServer(t, nil)
	getJSON(t, ts.URL+"/api/dungeon", http.StatusNotFound, nil)
}

func TestRegenerateAndFetch(t *testing.T) {
	_, ts := testServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/regenerate?seed=7", "", nil)
	if err != nil {
		t.Fatalf("POST /api/regenerate error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/regenerate status = %d", resp.StatusCode)
	}

	var generated Result
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if generated.MasterSeed != 7 {
		t.Errorf("master seed = %d, want 7", generated.MasterSeed)
	}
	if generated.Candidate == nil || generated.Candidate.Dungeon == nil {
		t.Fatal("regenerate returned no dungeon")
	}
	if generated.Candidate.Dungeon.RoomCount() < 1 {
		t.Error("generated dungeon has no rooms")
	}

	var fetched Result
	getJSON(t, ts.URL+"/api/dungeon", http.StatusOK, &fetched)
	if fetched.MasterSeed != generated.MasterSeed || fetched.Candidate.Seed != generated.Candidate.Seed {
		t.Error("fetched dungeon does not match the generated one")
	}
}

func TestRegenerateIsDeterministicPerSeed(t *testing.T) {
	m := testManager(t, nil)

	first, err := m.Regenerate(99)
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	second, err := m.Regenerate(99)
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	if first.Candidate.Seed != second.Candidate.Seed || first.Candidate.Score != second.Candidate.Score {
		t.Errorf("same master seed picked different winners: (%d, %v) vs (%d, %v)",
			first.Candidate.Seed, first.Candidate.Score, second.Candidate.Seed, second.Candidate.Score)
	}
}

func TestRegenerateRejectsBadSeed(t *testing.T) {
	_, ts := testServer(t, nil)
	resp, err := http.Post(ts.URL+"/api/regenerate?seed=abc", "", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestMethodGuards(t *testing.T) {
	_, ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/regenerate")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/regenerate status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}

	resp, err = http.Post(ts.URL+"/api/dungeon", "", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/dungeon status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestRunArchiveEndpoints(t *testing.T) {
	archive, err := database.Open(database.DefaultConfig(filepath.Join(t.TempDir(), "runs.db")))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer archive.Close()

	_, ts := testServer(t, archive)

	resp, err := http.Post(ts.URL+"/api/regenerate?seed=11", "", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	var generated Result
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	resp.Body.Close()
	if generated.RunID == 0 {
		t.Fatal("regeneration with an archive did not record a run")
	}

	var runs []database.Run
	getJSON(t, ts.URL+"/api/runs", http.StatusOK, &runs)
	if len(runs) != 1 {
		t.Fatalf("GET /api/runs returned %d runs, want 1", len(runs))
	}
	if runs[0].MasterSeed != 11 {
		t.Errorf("archived master seed = %d, want 11", runs[0].MasterSeed)
	}

	var run database.Run
	getJSON(t, fmt.Sprintf("%s/api/runs/%d", ts.URL, generated.RunID), http.StatusOK, &run)
	if run.Dungeon == nil || run.Dungeon.RoomCount() != generated.Candidate.Dungeon.RoomCount() {
		t.Error("archived run did not round-trip the dungeon")
	}

	getJSON(t, ts.URL+"/api/runs/9999", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/runs/abc", http.StatusBadRequest, nil)
}

func TestRunsDisabledWithoutArchive(t *testing.T) {
	_, ts := testServer(t, nil)
	getJSON(t, ts.URL+"/api/runs", http.StatusNotFound, nil)
}

func TestWebSocketReceivesBroadcast(t *testing.T) {
	s, ts := testServer(t, nil)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error: %v", err)
	}
	defer conn.Close()

	if s.hub.ClientCount() != 1 {
		t.Errorf("hub has %d clients, want 1", s.hub.ClientCount())
	}

	resp, err := http.Post(ts.URL+"/api/regenerate?seed=5", "", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("websocket read error: %v", err)
	}

	var pushed Result
	if err := json.Unmarshal(payload, &pushed); err != nil {
		t.Fatalf("broadcast decode error: %v", err)
	}
	if pushed.MasterSeed != 5 {
		t.Errorf("broadcast master seed = %d, want 5", pushed.MasterSeed)
	}
}

func TestWebSocketGreetsWithCurrentDungeon(t *testing.T) {
	_, ts := testServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/regenerate?seed=13", "", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("websocket read error: %v", err)
	}
	var pushed Result
	if err := json.Unmarshal(payload, &pushed); err != nil {
		t.Fatalf("greeting decode error: %v", err)
	}
	if pushed.MasterSeed != 13 {
		t.Errorf("greeting master seed = %d, want 13", pushed.MasterSeed)
	}
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"direct", "192.0.2.1:5555", nil, "192.0.2.1"},
		{"forwarded", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := getRealIP(r); got != tt.want {
				t.Errorf("getRealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
