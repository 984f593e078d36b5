package filerepo

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"nflpicks/internal/models"
	"nflpicks/internal/repository"
)

// Repository reads the predictions JSON and results CSV from disk. Every
// call re-opens the file; staleness is impossible and so is cache
// invalidation.
type Repository struct {
	PredictionsPath string
	ResultsPath     string
}

var _ repository.Repository = (*Repository)(nil)

func (r *Repository) LoadPredictions(ctx context.Context) (*models.PredictionTable, error) {
	ext := strings.ToLower(filepath.Ext(r.PredictionsPath))
	if ext != ".json" {
		return nil, fmt.Errorf("%w: expected a JSON predictions file, got %q", repository.ErrUnsupportedFormat, ext)
	}
	if _, err := os.Stat(r.PredictionsPath); err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("stat predictions file: %w", err)
	}

	raw, err := os.ReadFile(r.PredictionsPath)
	if err != nil {
		return nil, fmt.Errorf("read predictions file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode predictions file: %w", err)
	}

	table := &models.PredictionTable{
		Columns: models.ColumnSet{},
		Source:  filepath.Base(r.PredictionsPath),
	}
	for _, row := range rows {
		for key := range row {
			table.Columns.Add(key)
		}
		table.Rows = append(table.Rows, decodePrediction(row))
	}
	return table, nil
}

func decodePrediction(row map[string]any) models.Prediction {
	p := models.Prediction{
		Week:      models.CoerceInt64(row[models.ColWeek]),
		AwayTeam:  models.CoerceString(row[models.ColAwayTeam]),
		HomeTeam:  models.CoerceString(row[models.ColHomeTeam]),
		ModelPick: models.CoerceString(row[models.ColModelPick]),
		TotalPick: models.CoerceString(row[models.ColTotalPick]),
		KickoffET: models.CoerceString(row[models.ColKickoffET]),
	}

	p.HomeScore = models.CoerceDecimal(row[models.ColHomeScore])
	p.SpreadConfidence = models.CoerceDecimal(row[models.ColSpreadConfidence])
	p.TotalConfidence = models.CoerceDecimal(row[models.ColTotalConfidence])
	p.SpreadWinProb = models.CoerceDecimal(row[models.ColSpreadWinProb])
	p.SpreadStdGame = models.CoerceDecimal(row[models.ColSpreadStdGame])
	p.SpreadVariance = models.CoerceDecimal(row[models.ColSpreadVariance])
	p.SuggestedUnits = models.CoerceDecimal(row[models.ColSuggestedUnits])
	p.EdgeVsSpread = models.CoerceDecimal(row[models.ColEdgeVsSpread])
	p.EdgeVsTotal = models.CoerceDecimal(row[models.ColEdgeVsTotal])
	p.ProjectedSpreadHomeMinusAway = models.CoerceDecimal(row[models.ColProjectedSpreadHomeMinusAway])
	p.ProjectedFirstHalfSpread = models.CoerceDecimal(row[models.ColProjectedFirstHalfSpread])
	p.ProjectedTotalPoints = models.CoerceDecimal(row[models.ColProjectedTotalPoints])
	p.HomeLine = models.CoerceDecimal(row[models.ColHomeLine])
	p.AwayLine = models.CoerceDecimal(row[models.ColAwayLine])
	p.SportsbookHomeSpread = models.CoerceDecimal(row[models.ColSportsbookHomeSpread])
	p.SportsbookTotal = models.CoerceDecimal(row[models.ColSportsbookTotal])
	p.ConsensusHomeSpread = models.CoerceDecimal(row[models.ColConsensusHomeSpread])

	return p
}

func (r *Repository) LoadResults(ctx context.Context) (*models.ResultTable, error) {
	if _, err := os.Stat(r.ResultsPath); err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("stat results file: %w", err)
	}

	raw, err := os.ReadFile(r.ResultsPath)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	usedFallback := false
	if !utf8.Valid(raw) {
		// Results exports occasionally carry Latin-1 bytes (team names,
		// venue notes). Decode once with the single-byte fallback.
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode results file as latin-1: %w", err)
		}
		raw = decoded
		usedFallback = true
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse results csv: %w", err)
	}
	if len(records) == 0 {
		return &models.ResultTable{
			Columns:      models.ColumnSet{},
			Source:       filepath.Base(r.ResultsPath),
			UsedFallback: usedFallback,
		}, nil
	}

	header := records[0]
	index := map[string]int{}
	columns := models.ColumnSet{}
	for i, name := range header {
		index[name] = i
		columns.Add(name)
	}

	table := &models.ResultTable{
		Header:       header,
		Columns:      columns,
		Source:       filepath.Base(r.ResultsPath),
		UsedFallback: usedFallback,
	}
	for _, rec := range records[1:] {
		table.Rows = append(table.Rows, decodeResult(rec, index))
	}
	return table, nil
}

func decodeResult(rec []string, index map[string]int) models.Result {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	res := models.Result{Raw: rec}
	res.Week = models.CoerceInt64(cell(models.ColWeek))
	res.SpreadPickHit = models.CoerceBool(cell(models.ColSpreadPickHit))
	res.TotalPickHit = models.CoerceBool(cell(models.ColTotalPickHit))
	res.ModelBeatsVegasSpread = models.CoerceBool(cell(models.ColModelBeatsVegasSpread))
	res.ModelBeatsVegasTotal = models.CoerceBool(cell(models.ColModelBeatsVegasTotal))
	res.ModelSpreadError = models.CoerceDecimal(cell(models.ColModelSpreadError))
	res.ModelTotalError = models.CoerceDecimal(cell(models.ColModelTotalError))
	return res
}
