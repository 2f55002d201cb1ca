package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adiu19/schedsim/scheduler"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSimulateHandler_FCFS(t *testing.T) {
	r := New(0, 0).Router()
	w := do(r, http.MethodPost, "/v1/simulate", `{
		"policy": "fcfs",
		"jobs": [
			{"id": "1", "arrival": 0, "burst": 5},
			{"id": "2", "arrival": 2, "burst": 3},
			{"id": "3", "arrival": 3, "burst": 8}
		]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		RunID   string            `json:"run_id"`
		Policy  string            `json:"policy"`
		Events  []scheduler.Event `json:"events"`
		Summary scheduler.Summary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID == "" || resp.Policy != "fcfs" {
		t.Errorf("unexpected envelope: run_id=%q policy=%q", resp.RunID, resp.Policy)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(resp.Events))
	}
	if last := resp.Events[2]; last.JobID != "3" || last.Start != 8 || last.End != 16 || last.Waiting != 5 {
		t.Errorf("unexpected last event: %+v", last)
	}
	if resp.Summary.Makespan != 16 {
		t.Errorf("expected makespan 16, got %d", resp.Summary.Makespan)
	}
}

func TestSimulateHandler_BadRequests(t *testing.T) {
	r := New(0, 0).Router()
	cases := map[string]string{
		"missing policy": `{}`,
		"unknown policy": `{"policy": "lottery"}`,
		"zero quantum":   `{"policy": "rr", "quantum": 0}`,
		"zero burst":     `{"policy": "sjn", "jobs": [{"id": "a", "burst": 0}]}`,
		"malformed":      `{"policy":`,
	}
	for name, body := range cases {
		w := do(r, http.MethodPost, "/v1/simulate", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, w.Code, w.Body.String())
		}
	}
}

func TestCompareHandler(t *testing.T) {
	r := New(0, 0).Router()
	w := do(r, http.MethodPost, "/v1/compare", `{"quantum": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Summaries []scheduler.Summary `json:"summaries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Summaries) != len(scheduler.Policies) {
		t.Fatalf("expected %d summaries, got %d", len(scheduler.Policies), len(resp.Summaries))
	}
	if resp.Summaries[3].PolicyName != "rr" || resp.Summaries[3].Quantum != 2 {
		t.Errorf("unexpected round robin summary: %+v", resp.Summaries[3])
	}
}

func TestPoliciesHandler(t *testing.T) {
	r := New(0, 0).Router()
	w := do(r, http.MethodGet, "/v1/policies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"name":"rr"`) {
		t.Errorf("expected rr in policy list, got %s", w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	// One token, refilled far slower than the test runs
	r := New(0.001, 1).Router()

	if w := do(r, http.MethodPost, "/v1/simulate", `{"policy": "fcfs"}`); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/v1/simulate", `{"policy": "fcfs"}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}

	// Unlimited routes stay available
	if w := do(r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("healthz: expected 200, got %d", w.Code)
	}
}
