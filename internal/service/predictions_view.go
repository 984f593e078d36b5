package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"nflpicks/internal/models"
	"nflpicks/internal/repository"
)

// kickoffDisplayLayout matches the generator's Eastern-time caption style,
// e.g. "Sun Sep 07, 01:00 PM".
const kickoffDisplayLayout = "Mon Jan 02, 03:04 PM"

var kickoffParseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Columns the table renders, in order. Anything the file did not carry is
// skipped; a row index is never shown.
var predictionDisplayColumns = []string{
	models.ColWeek,
	models.ColKickoffLocal,
	models.ColMatchup,
	models.ColModelPick,
	models.ColBetSide,
	models.ColPredictedSpread,
	models.ColSportsbookHomeSpread,
	models.ColSpreadConfidence,
	models.ColSuggestedUnits,
	models.ColProjectedTotalPoints,
	models.ColSportsbookTotal,
	models.ColTotalConfidence,
	models.ColTotalPick,
}

type PredictionsViewService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type PredictionsSummary struct {
	GamesShown        int    `json:"games_shown"`
	AvgSpreadConf     string `json:"avg_spread_conf"`
	AvgSuggestedUnits string `json:"avg_suggested_units"`
}

type PredictionsView struct {
	Source       string             `json:"source"`
	Weeks        []int64            `json:"weeks"`
	SelectedWeek *int64             `json:"selected_week,omitempty"`
	Summary      PredictionsSummary `json:"summary"`
	Columns      []string           `json:"columns"`
	Rows         []map[string]any   `json:"rows"`
}

// Build loads the predictions file and runs the full presentation pipeline:
// derive helper columns, sort strongest plays first, filter to the selected
// week and to games without a final score, then format for display. The
// file is re-read on every call.
func (s *PredictionsViewService) Build(ctx context.Context, weekParam *int64) (*PredictionsView, error) {
	table, err := s.Repo.LoadPredictions(ctx)
	if err != nil {
		return nil, err
	}

	deriveColumns(table)
	sortPredictions(table)

	view := &PredictionsView{Source: table.Source}

	rows := table.Rows
	if table.Columns.Has(models.ColWeek) {
		view.Weeks = distinctWeeks(rows)
		if len(view.Weeks) > 0 {
			selected := view.Weeks[len(view.Weeks)-1]
			if weekParam != nil && containsWeek(view.Weeks, *weekParam) {
				selected = *weekParam
			}
			view.SelectedWeek = &selected
			rows = filterByWeek(rows, selected)
		}
	}

	if table.Columns.Has(models.ColHomeScore) {
		unplayed := rows[:0:0]
		for _, row := range rows {
			if row.HomeScore == nil {
				unplayed = append(unplayed, row)
			}
		}
		rows = unplayed
	}

	view.Summary = summarize(rows, table.Columns)
	view.Columns = presentColumns(table.Columns)
	view.Rows = make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		view.Rows = append(view.Rows, displayRow(row, view.Columns))
	}
	return view, nil
}

// deriveColumns recomputes the presentation columns from the base fields.
// Derived values are never read from the file.
func deriveColumns(table *models.PredictionTable) {
	cols := table.Columns

	for i := range table.Rows {
		row := &table.Rows[i]

		if cols.Has(models.ColAwayTeam, models.ColHomeTeam) {
			matchup := strOrEmpty(row.AwayTeam) + " @ " + strOrEmpty(row.HomeTeam)
			row.Matchup = &matchup
		}

		if cols.Has(models.ColEdgeVsSpread) {
			// A missing edge lands on "Away" here, same as a negative
			// one. The generator has always behaved this way and the
			// betting sheet downstream expects it.
			side := "Away"
			if row.EdgeVsSpread != nil && row.EdgeVsSpread.Sign() >= 0 {
				side = "Home"
			}
			row.BetSide = &side
		}

		if cols.Has(models.ColHomeLine, models.ColAwayLine, models.ColModelPick, models.ColHomeTeam, models.ColAwayTeam) {
			if row.ModelPick != nil && row.HomeTeam != nil && *row.ModelPick == *row.HomeTeam {
				row.PredictedSpread = row.HomeLine
			} else {
				row.PredictedSpread = row.AwayLine
			}
		} else if cols.Has(models.ColProjectedSpreadHomeMinusAway) {
			row.PredictedSpread = row.ProjectedSpreadHomeMinusAway
		}

		if cols.Has(models.ColKickoffET) && row.KickoffET != nil {
			local := formatKickoff(*row.KickoffET)
			row.KickoffLocal = &local
		}
	}

	if cols.Has(models.ColAwayTeam, models.ColHomeTeam) {
		cols.Add(models.ColMatchup)
	}
	if cols.Has(models.ColEdgeVsSpread) {
		cols.Add(models.ColBetSide)
	}
	if cols.Has(models.ColHomeLine, models.ColAwayLine, models.ColModelPick, models.ColHomeTeam, models.ColAwayTeam) ||
		cols.Has(models.ColProjectedSpreadHomeMinusAway) {
		cols.Add(models.ColPredictedSpread)
	}
	if cols.Has(models.ColKickoffET) {
		cols.Add(models.ColKickoffLocal)
	}
}

// formatKickoff reformats a kickoff timestamp for display. Values that do
// not parse keep their raw form.
func formatKickoff(raw string) string {
	for _, layout := range kickoffParseLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format(kickoffDisplayLayout)
		}
	}
	return raw
}

// sortPredictions orders strongest plays first: descending by suggested
// units, then spread confidence, then edge vs spread, for whichever of
// those columns exist. The sort is stable and missing values go last.
func sortPredictions(table *models.PredictionTable) {
	type keyFn func(*models.Prediction) *decimal.Decimal
	var keys []keyFn
	if table.Columns.Has(models.ColSuggestedUnits) {
		keys = append(keys, func(p *models.Prediction) *decimal.Decimal { return p.SuggestedUnits })
	}
	if table.Columns.Has(models.ColSpreadConfidence) {
		keys = append(keys, func(p *models.Prediction) *decimal.Decimal { return p.SpreadConfidence })
	}
	if table.Columns.Has(models.ColEdgeVsSpread) {
		keys = append(keys, func(p *models.Prediction) *decimal.Decimal { return p.EdgeVsSpread })
	}
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		a, b := &table.Rows[i], &table.Rows[j]
		for _, key := range keys {
			av, bv := key(a), key(b)
			switch {
			case av == nil && bv == nil:
				continue
			case av == nil:
				return false
			case bv == nil:
				return true
			}
			if cmp := av.Cmp(*bv); cmp != 0 {
				return cmp > 0
			}
		}
		return false
	})
}

func distinctWeeks(rows []models.Prediction) []int64 {
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

func containsWeek(weeks []int64, w int64) bool {
	for _, v := range weeks {
		if v == w {
			return true
		}
	}
	return false
}

func filterByWeek(rows []models.Prediction, week int64) []models.Prediction {
	out := rows[:0:0]
	for _, row := range rows {
		if row.Week != nil && *row.Week == week {
			out = append(out, row)
		}
	}
	return out
}

func summarize(rows []models.Prediction, cols models.ColumnSet) PredictionsSummary {
	summary := PredictionsSummary{
		GamesShown:        len(rows),
		AvgSpreadConf:     "--",
		AvgSuggestedUnits: "--",
	}
	if cols.Has(models.ColSpreadConfidence) {
		if avg := meanDecimal(rows, func(p *models.Prediction) *decimal.Decimal { return p.SpreadConfidence }); avg != nil {
			summary.AvgSpreadConf = avg.StringFixed(1) + "%"
		}
	}
	if cols.Has(models.ColSuggestedUnits) {
		if avg := meanDecimal(rows, func(p *models.Prediction) *decimal.Decimal { return p.SuggestedUnits }); avg != nil {
			summary.AvgSuggestedUnits = avg.StringFixed(2)
		}
	}
	return summary
}

func meanDecimal(rows []models.Prediction, key func(*models.Prediction) *decimal.Decimal) *decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for i := range rows {
		if v := key(&rows[i]); v != nil {
			sum = sum.Add(*v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum.Div(decimal.NewFromInt(int64(n)))
	return &avg
}

func presentColumns(cols models.ColumnSet) []string {
	out := make([]string, 0, len(predictionDisplayColumns))
	for _, col := range predictionDisplayColumns {
		if cols.Has(col) {
			out = append(out, col)
		}
	}
	return out
}

// displayRow formats one prediction for the table. Signed columns carry an
// explicit leading sign, confidence columns render as percentages, and
// missing values become blanks.
func displayRow(row models.Prediction, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, col := range columns {
		switch col {
		case models.ColWeek:
			out[col] = anyOrNil(row.Week)
		case models.ColKickoffLocal:
			out[col] = anyOrNil(row.KickoffLocal)
		case models.ColMatchup:
			out[col] = anyOrNil(row.Matchup)
		case models.ColModelPick:
			out[col] = anyOrNil(row.ModelPick)
		case models.ColBetSide:
			out[col] = anyOrNil(row.BetSide)
		case models.ColTotalPick:
			out[col] = anyOrNil(row.TotalPick)
		case models.ColPredictedSpread:
			out[col] = formatSigned(row.PredictedSpread)
		case models.ColSportsbookHomeSpread:
			out[col] = formatSigned(row.SportsbookHomeSpread)
		case models.ColProjectedTotalPoints:
			out[col] = formatSigned(row.ProjectedTotalPoints)
		case models.ColSpreadConfidence:
			out[col] = formatPercent(row.SpreadConfidence)
		case models.ColTotalConfidence:
			out[col] = formatPercent(row.TotalConfidence)
		case models.ColSuggestedUnits:
			out[col] = formatTwoDecimals(row.SuggestedUnits)
		case models.ColSportsbookTotal:
			out[col] = formatTwoDecimals(row.SportsbookTotal)
		}
	}
	return out
}

func formatSigned(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	s := d.StringFixed(2)
	if d.Sign() >= 0 {
		return "+" + s
	}
	return s
}

func formatPercent(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(1) + "%"
}

func formatTwoDecimals(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func anyOrNil[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
