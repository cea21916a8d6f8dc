package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type stubResults struct {
	results []storage.Result
	err     error
	mode    string
}

func (s *stubResults) TopResults(mode string, limit int) ([]storage.Result, error) {
	s.mode = mode
	if limit < len(s.results) {
		return s.results[:limit], s.err
	}
	return s.results, s.err
}

func newTestServer(t *testing.T, results ResultLister) (*Server, *session.Manager) {
	t.Helper()
	mgr := session.NewManager()
	return NewServer(mgr, results, nil, nil), mgr
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return v
}

func TestCreateAndGetSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rr := do(t, srv, http.MethodPost, "/api/sessions", createRequest{Mode: "endless", Seed: 5})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body)
	}
	created := decode[session.State](t, rr)
	if created.Mode != t2048.ModeEndless || created.Seed != 5 || created.Tiles != 2 {
		t.Errorf("created = %+v", created)
	}

	rr = do(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	got := decode[session.State](t, rr)
	if got.Board != created.Board {
		t.Error("get returned a different board")
	}

	rr = do(t, srv, http.MethodGet, "/api/sessions", nil)
	list := decode[struct {
		Count int `json:"count"`
	}](t, rr)
	if list.Count != 1 {
		t.Errorf("count = %d", list.Count)
	}
}

func TestCreateSessionDefaultsAndErrors(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rr := do(t, srv, http.MethodPost, "/api/sessions", nil)
	if rr.Code != http.StatusCreated {
		t.Errorf("empty body status = %d: %s", rr.Code, rr.Body)
	}
	if st := decode[session.State](t, rr); st.Mode != t2048.ModeClassic {
		t.Errorf("default mode = %v", st.Mode)
	}

	if rr := do(t, srv, http.MethodPost, "/api/sessions", createRequest{Mode: "campaign"}); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown mode status = %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodPost, "/api/sessions", "{not json"); rr.Code != http.StatusBadRequest {
		t.Errorf("bad JSON status = %d", rr.Code)
	}
}

func TestShiftEndpoint(t *testing.T) {
	srv, mgr := newTestServer(t, nil)
	st, _ := mgr.Create(9, t2048.ModeClassic)

	var legal []t2048.Direction
	legal, _ = mgr.LegalMoves(st.ID)
	if len(legal) == 0 {
		t.Fatal("fresh board has no legal moves")
	}

	rr := do(t, srv, http.MethodPost, "/api/sessions/"+st.ID+"/shift", shiftRequest{Direction: legal[0].String()})
	if rr.Code != http.StatusOK {
		t.Fatalf("shift status = %d: %s", rr.Code, rr.Body)
	}
	res := decode[session.ShiftResult](t, rr)
	if !res.Move.Accepted || res.State.Moves != 1 || res.Move.Direction != legal[0] {
		t.Errorf("shift result = %+v", res)
	}

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown direction", "/api/sessions/" + st.ID + "/shift", shiftRequest{Direction: "sideways"}, http.StatusBadRequest},
		{"bad body", "/api/sessions/" + st.ID + "/shift", "nope", http.StatusBadRequest},
		{"missing session", "/api/sessions/missing/shift", shiftRequest{Direction: "up"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.status, rr.Body)
			}
			if e := decode[map[string]string](t, rr); e["error"] == "" {
				t.Error("error body missing")
			}
		})
	}
}

func TestShiftFinishedGameConflict(t *testing.T) {
	srv, mgr := newTestServer(t, nil)
	st, _ := mgr.Create(1, t2048.ModeClassic)

	// Play random legal moves until the board is finished.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		legal, _ := mgr.LegalMoves(st.ID)
		if len(legal) == 0 {
			break
		}
		if _, err := mgr.Shift(st.ID, legal[rng.Intn(len(legal))]); err != nil && !errors.Is(err, session.ErrGameFinished) {
			t.Fatal(err)
		}
	}

	rr := do(t, srv, http.MethodPost, "/api/sessions/"+st.ID+"/shift", shiftRequest{Direction: "left"})
	if rr.Code != http.StatusConflict {
		t.Errorf("finished game status = %d, want 409", rr.Code)
	}
}

func TestPermittedEndpoint(t *testing.T) {
	srv, mgr := newTestServer(t, nil)
	st, _ := mgr.Create(4, t2048.ModeClassic)

	rr := do(t, srv, http.MethodGet, "/api/sessions/"+st.ID+"/permitted", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[permittedResponse](t, rr)
	if len(resp.Permitted) != 4 {
		t.Errorf("permitted = %v", resp.Permitted)
	}
	for _, d := range resp.LegalMoves {
		if !resp.Permitted[d.String()] {
			t.Errorf("%v legal but not permitted", d)
		}
	}

	if rr := do(t, srv, http.MethodGet, "/api/sessions/missing/permitted", nil); rr.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", rr.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	srv, mgr := newTestServer(t, nil)
	st, _ := mgr.Create(4, t2048.ModeClassic)

	if rr := do(t, srv, http.MethodDelete, "/api/sessions/"+st.ID, nil); rr.Code != http.StatusOK {
		t.Errorf("delete status = %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodDelete, "/api/sessions/"+st.ID, nil); rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rr.Code)
	}
}

func TestScoresEndpoint(t *testing.T) {
	results := &stubResults{results: []storage.Result{
		{ID: 1, Mode: "2048_endless", Moves: 10, MaxTile: 4096, Won: true, Outcome: "won"},
		{ID: 2, Mode: "2048_endless", Moves: 20, MaxTile: 512, Outcome: "lost"},
	}}
	srv, _ := newTestServer(t, results)

	rr := do(t, srv, http.MethodGet, "/api/scores/endless?limit=1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body)
	}
	resp := decode[struct {
		Mode    string           `json:"mode"`
		Results []storage.Result `json:"results"`
	}](t, rr)
	if resp.Mode != "2048_endless" || results.mode != "2048_endless" || len(resp.Results) != 1 {
		t.Errorf("scores = %+v", resp)
	}

	if rr := do(t, srv, http.MethodGet, "/api/scores/campaign", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown mode status = %d", rr.Code)
	}

	results.err = errors.New("db down")
	if rr := do(t, srv, http.MethodGet, "/api/scores/classic", nil); rr.Code != http.StatusInternalServerError {
		t.Errorf("store error status = %d", rr.Code)
	}

	noStore, _ := newTestServer(t, nil)
	if rr := do(t, noStore, http.MethodGet, "/api/scores/classic", nil); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("no store status = %d", rr.Code)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	if rr := do(t, srv, http.MethodGet, "/ws", nil); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("no hub status = %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	if rr := do(t, srv, http.MethodGet, "/api/health", nil); rr.Code != http.StatusOK {
		t.Errorf("health status = %d", rr.Code)
	}
}
