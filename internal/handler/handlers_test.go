package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nflpicks/internal/auth"
	filerepo "nflpicks/internal/repository/file"
	"nflpicks/internal/service"
)

func newTestServer(t *testing.T, predictionsJSON, resultsCSV string) (*gin.Engine, *auth.SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	predictionsPath := filepath.Join(dir, "predictions.json")
	resultsPath := filepath.Join(dir, "results.csv")
	if predictionsJSON != "" {
		if err := os.WriteFile(predictionsPath, []byte(predictionsJSON), 0o644); err != nil {
			t.Fatalf("write predictions: %v", err)
		}
	}
	if resultsCSV != "" {
		if err := os.WriteFile(resultsPath, []byte(resultsCSV), 0o644); err != nil {
			t.Fatalf("write results: %v", err)
		}
	}

	store := auth.NewSessionStore(map[string]string{"alice": "s3cret"})
	repo := &filerepo.Repository{PredictionsPath: predictionsPath, ResultsPath: resultsPath}

	engine := gin.New()
	engine.Use(auth.RequireSession(store))
	(&AuthHandler{Store: store}).Register(engine)
	(&PredictionsHandler{Service: &service.PredictionsViewService{Repo: repo}}).Register(engine)
	(&PerformanceHandler{Service: &service.PerformanceViewService{Repo: repo}}).Register(engine)
	(&HealthHandler{PredictionsPath: predictionsPath, ResultsPath: resultsPath}).Register(engine)
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, decoded
}

func login(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w, body := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}
	return token
}

func TestLogin_InvalidCredentials(t *testing.T) {
	engine, _ := newTestServer(t, "[]", "week\n")
	w, body := doJSON(t, engine, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", w.Code)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "invalid") {
		t.Fatalf("message=%q want invalid credentials", msg)
	}
}

func TestPredictions_RequiresSession(t *testing.T) {
	engine, _ := newTestServer(t, "[]", "")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/predictions", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401 without a token", w.Code)
	}
}

func TestPredictions_EndToEnd(t *testing.T) {
	predictions := `[
		{"week": 1, "away_team": "NYJ", "home_team": "BUF", "model_pick": "BUF",
		 "home_line": "-6.5", "away_line": "+6.5", "edge_vs_spread": "+1.25",
		 "kickoff_et": "2025-09-07T13:00:00", "spread_confidence": 61.5, "suggested_units": 1.5},
		{"week": 1, "away_team": "MIA", "home_team": "NE", "model_pick": "MIA",
		 "home_line": "+2.5", "away_line": "-2.5", "edge_vs_spread": "-0.75",
		 "kickoff_et": "not a time", "spread_confidence": 55.0, "suggested_units": 0.5}
	]`
	engine, _ := newTestServer(t, predictions, "")
	token := login(t, engine)

	w, body := doJSON(t, engine, http.MethodGet, "/api/v1/predictions", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]any)
	rows := data["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows=%d want 2", len(rows))
	}

	first := rows[0].(map[string]any)
	if first["matchup"] != "NYJ @ BUF" {
		t.Fatalf("matchup=%v", first["matchup"])
	}
	if first["bet_side"] != "Home" {
		t.Fatalf("bet_side=%v want Home", first["bet_side"])
	}
	if first["predicted_spread"] != "-6.50" {
		t.Fatalf("predicted_spread=%v want -6.50", first["predicted_spread"])
	}
	if first["kickoff_local"] != "Sun Sep 07, 01:00 PM" {
		t.Fatalf("kickoff_local=%v", first["kickoff_local"])
	}

	// The unparseable kickoff keeps its raw value and the load still succeeds.
	second := rows[1].(map[string]any)
	if second["kickoff_local"] != "not a time" {
		t.Fatalf("raw kickoff=%v", second["kickoff_local"])
	}
	if second["bet_side"] != "Away" {
		t.Fatalf("bet_side=%v want Away", second["bet_side"])
	}

	summary := data["summary"].(map[string]any)
	if summary["avg_spread_conf"] != "58.3%" {
		t.Fatalf("avg_spread_conf=%v want 58.3%%", summary["avg_spread_conf"])
	}
}

func TestPredictions_FileMissing(t *testing.T) {
	engine, _ := newTestServer(t, "", "")
	token := login(t, engine)
	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/predictions", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", w.Code)
	}
}

func TestPerformance_EndToEnd(t *testing.T) {
	results := "week,spread_pick_hit,model_spread_error\n" +
		"1,True,2.5\n" +
		"2,True,-1.5\n" +
		"2,False,0.5\n"
	engine, _ := newTestServer(t, "", results)
	token := login(t, engine)

	w, body := doJSON(t, engine, http.MethodGet, "/api/v1/performance", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]any)
	if sel, _ := data["selected_week"].(float64); sel != 2 {
		t.Fatalf("selected_week=%v want 2", data["selected_week"])
	}
	metrics := data["metrics"].([]any)
	tile := metrics[0].(map[string]any)
	if tile["label"] != "Spread Accuracy" || tile["value"] != "50.00%" {
		t.Fatalf("tile=%v want Spread Accuracy 50.00%%", tile)
	}
	errsRaw := data["spread_errors"].([]any)
	if len(errsRaw) != 2 {
		t.Fatalf("spread_errors=%v want 2 values", errsRaw)
	}
}

func TestPerformance_WeekOverride(t *testing.T) {
	results := "week,total_pick_hit\n1,True\n2,False\n"
	engine, _ := newTestServer(t, "", results)
	token := login(t, engine)

	w, body := doJSON(t, engine, http.MethodGet, "/api/v1/performance?week=1", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	data := body["data"].(map[string]any)
	if sel, _ := data["selected_week"].(float64); sel != 1 {
		t.Fatalf("selected_week=%v want 1", data["selected_week"])
	}
	metrics := data["metrics"].([]any)
	tile := metrics[0].(map[string]any)
	if tile["value"] != "100.00%" {
		t.Fatalf("tile=%v want 100.00%%", tile)
	}
}

func TestHealth_Ready(t *testing.T) {
	engine, _ := newTestServer(t, "[]", "week\n")
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", w.Code)
	}
}
