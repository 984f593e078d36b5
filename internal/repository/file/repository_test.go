package filerepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nflpicks/internal/models"
	"nflpicks/internal/repository"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPredictions_UnsupportedExtension(t *testing.T) {
	repo := &Repository{PredictionsPath: "predictions.csv"}
	_, err := repo.LoadPredictions(context.Background())
	if !errors.Is(err, repository.ErrUnsupportedFormat) {
		t.Fatalf("err=%v want ErrUnsupportedFormat", err)
	}
}

func TestLoadPredictions_NotFound(t *testing.T) {
	repo := &Repository{PredictionsPath: filepath.Join(t.TempDir(), "missing.json")}
	_, err := repo.LoadPredictions(context.Background())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestLoadPredictions_CoercesMixedTypes(t *testing.T) {
	path := writeFile(t, "predictions.json", []byte(`[
		{"week": 18, "away_team": "NYJ", "home_team": "BUF", "edge_vs_spread": "+1.50", "suggested_units": 2.5},
		{"week": "18", "away_team": "MIA", "home_team": "NE", "edge_vs_spread": "n/a", "home_score": 24}
	]`))
	repo := &Repository{PredictionsPath: path}
	table, err := repo.LoadPredictions(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(table.Rows))
	}
	if !table.Columns.Has(models.ColWeek, models.ColEdgeVsSpread, models.ColHomeScore) {
		t.Fatalf("columns=%v", table.Columns)
	}

	first := table.Rows[0]
	if first.Week == nil || *first.Week != 18 {
		t.Fatalf("week=%v want 18", first.Week)
	}
	if first.EdgeVsSpread == nil || first.EdgeVsSpread.String() != "1.5" {
		t.Fatalf("edge=%v want 1.5", first.EdgeVsSpread)
	}
	if first.HomeScore != nil {
		t.Fatalf("home_score=%v want nil", first.HomeScore)
	}

	second := table.Rows[1]
	if second.Week == nil || *second.Week != 18 {
		t.Fatalf("string week=%v want 18", second.Week)
	}
	if second.EdgeVsSpread != nil {
		t.Fatalf("unparseable edge=%v want nil", second.EdgeVsSpread)
	}
	if second.HomeScore == nil {
		t.Fatalf("home_score missing, want 24")
	}
}

func TestLoadResults_UTF8NoFallback(t *testing.T) {
	path := writeFile(t, "results.csv", []byte("week,spread_pick_hit\n1,True\n2,False\n"))
	repo := &Repository{ResultsPath: path}
	table, err := repo.LoadResults(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if table.UsedFallback {
		t.Fatalf("valid UTF-8 must not use the fallback")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(table.Rows))
	}
	if table.Rows[0].SpreadPickHit == nil || !*table.Rows[0].SpreadPickHit {
		t.Fatalf("spread_pick_hit=%v want true", table.Rows[0].SpreadPickHit)
	}
}

func TestLoadResults_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid on its own in UTF-8.
	path := writeFile(t, "results.csv", []byte("week,note\n1,Jos\xe9\n"))
	repo := &Repository{ResultsPath: path}
	table, err := repo.LoadResults(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !table.UsedFallback {
		t.Fatalf("non-UTF8 input must report the fallback")
	}
	if got := table.Rows[0].Raw[1]; got != "José" {
		t.Fatalf("cell=%q want José", got)
	}
}

func TestLoadResults_NotFound(t *testing.T) {
	repo := &Repository{ResultsPath: filepath.Join(t.TempDir(), "missing.csv")}
	_, err := repo.LoadResults(context.Background())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}
