package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"nflpicks/internal/models"
	"nflpicks/internal/repository"
)

type PerformanceViewService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// PerformanceMetric is one headline tile, e.g. "Spread Accuracy" = "55.21%".
type PerformanceMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type PerformanceView struct {
	Source       string  `json:"source"`
	EncodingNote string  `json:"encoding_note,omitempty"`
	Weeks        []int64 `json:"weeks"`
	SelectedWeek *int64  `json:"selected_week,omitempty"`
	Warning      string  `json:"warning,omitempty"`
	GamesShown   int     `json:"games_shown"`

	Metrics []PerformanceMetric `json:"metrics"`

	// Raw per-row error values, post-filter, for the two bar charts.
	SpreadErrors []float64 `json:"spread_errors"`
	TotalErrors  []float64 `json:"total_errors"`

	// The full filtered table, unformatted, in file column order.
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Build loads the results file (with Latin-1 fallback), filters to the
// selected week and computes the accuracy metrics and error series.
func (s *PerformanceViewService) Build(ctx context.Context, weekParam *int64) (*PerformanceView, error) {
	table, err := s.Repo.LoadResults(ctx)
	if err != nil {
		return nil, err
	}

	view := &PerformanceView{
		Source:  table.Source,
		Columns: table.Header,
	}
	if table.UsedFallback {
		view.EncodingNote = "Loaded results with Latin-1 encoding due to non-UTF8 characters."
		if s.Logger != nil {
			s.Logger.Info("results decoded with latin-1 fallback", zap.String("source", table.Source))
		}
	}

	rows := table.Rows
	if table.Columns.Has(models.ColWeek) {
		view.Weeks = distinctResultWeeks(rows)
		if len(view.Weeks) > 0 {
			selected := view.Weeks[len(view.Weeks)-1]
			if weekParam != nil && containsWeek(view.Weeks, *weekParam) {
				selected = *weekParam
			}
			view.SelectedWeek = &selected
			rows = filterResultsByWeek(rows, selected)
		} else {
			view.Warning = "No week values found in results."
		}
	}
	view.GamesShown = len(rows)

	if table.Columns.Has(models.ColSpreadPickHit) {
		view.addHitRate("Spread Accuracy", rows, func(r *models.Result) *bool { return r.SpreadPickHit })
	}
	if table.Columns.Has(models.ColTotalPickHit) {
		view.addHitRate("Total Accuracy", rows, func(r *models.Result) *bool { return r.TotalPickHit })
	}
	if table.Columns.Has(models.ColModelBeatsVegasSpread) {
		view.addHitRate("Model Beats Vegas (Spread)", rows, func(r *models.Result) *bool { return r.ModelBeatsVegasSpread })
	}
	if table.Columns.Has(models.ColModelBeatsVegasTotal) {
		view.addHitRate("Model Beats Vegas (Total)", rows, func(r *models.Result) *bool { return r.ModelBeatsVegasTotal })
	}

	if table.Columns.Has(models.ColModelSpreadError) {
		view.SpreadErrors = errorSeries(rows, func(r *models.Result) *float64 {
			if r.ModelSpreadError == nil {
				return nil
			}
			f := r.ModelSpreadError.InexactFloat64()
			return &f
		})
	}
	if table.Columns.Has(models.ColModelTotalError) {
		view.TotalErrors = errorSeries(rows, func(r *models.Result) *float64 {
			if r.ModelTotalError == nil {
				return nil
			}
			f := r.ModelTotalError.InexactFloat64()
			return &f
		})
	}

	view.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		view.Rows = append(view.Rows, row.Raw)
	}
	return view, nil
}

// addHitRate appends the mean of a boolean column as a percentage tile.
// A column with no usable values renders the placeholder instead of a rate.
func (v *PerformanceView) addHitRate(label string, rows []models.Result, key func(*models.Result) *bool) {
	hits, n := 0, 0
	for i := range rows {
		val := key(&rows[i])
		if val == nil {
			continue
		}
		n++
		if *val {
			hits++
		}
	}
	value := "--"
	if n > 0 {
		value = percentFixed2(float64(hits) / float64(n) * 100)
	}
	v.Metrics = append(v.Metrics, PerformanceMetric{Label: label, Value: value})
}

func percentFixed2(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

func errorSeries(rows []models.Result, key func(*models.Result) *float64) []float64 {
	out := make([]float64, 0, len(rows))
	for i := range rows {
		if v := key(&rows[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func distinctResultWeeks(rows []models.Result) []int64 {
	seen := map[int64]struct{}{}
	var weeks []int64
	for _, row := range rows {
		if row.Week == nil {
			continue
		}
		if _, ok := seen[*row.Week]; ok {
			continue
		}
		seen[*row.Week] = struct{}{}
		weeks = append(weeks, *row.Week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })
	return weeks
}

func filterResultsByWeek(rows []models.Result, week int64) []models.Result {
	out := rows[:0:0]
	for _, row := range rows {
		if row.Week != nil && *row.Week == week {
			out = append(out, row)
		}
	}
	return out
}
