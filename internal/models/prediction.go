package models

import "github.com/shopspring/decimal"

// Column names as they appear in the predictions JSON and results CSV.
const (
	ColWeek                         = "week"
	ColAwayTeam                     = "away_team"
	ColHomeTeam                     = "home_team"
	ColModelPick                    = "model_pick"
	ColTotalPick                    = "total_pick"
	ColKickoffET                    = "kickoff_et"
	ColHomeScore                    = "home_score"
	ColSpreadConfidence             = "spread_confidence"
	ColTotalConfidence              = "total_confidence"
	ColSpreadWinProb                = "spread_win_prob"
	ColSpreadStdGame                = "spread_std_game"
	ColSpreadVariance               = "spread_variance"
	ColSuggestedUnits               = "suggested_units"
	ColEdgeVsSpread                 = "edge_vs_spread"
	ColEdgeVsTotal                  = "edge_vs_total"
	ColProjectedSpreadHomeMinusAway = "projected_spread_home_minus_away"
	ColProjectedFirstHalfSpread     = "projected_first_half_spread_home_minus_away"
	ColProjectedTotalPoints         = "projected_total_points"
	ColHomeLine                     = "home_line"
	ColAwayLine                     = "away_line"
	ColSportsbookHomeSpread         = "sportsbook_home_spread"
	ColSportsbookTotal              = "sportsbook_total"
	ColConsensusHomeSpread          = "consensus_home_spread"

	ColSpreadPickHit         = "spread_pick_hit"
	ColTotalPickHit          = "total_pick_hit"
	ColModelBeatsVegasSpread = "model_beats_vegas_spread"
	ColModelBeatsVegasTotal  = "model_beats_vegas_total"
	ColModelSpreadError      = "model_spread_error"
	ColModelTotalError       = "model_total_error"

	// Derived, never read from disk.
	ColMatchup         = "matchup"
	ColBetSide         = "bet_side"
	ColPredictedSpread = "predicted_spread"
	ColKickoffLocal    = "kickoff_local"
)

// ColumnSet records which columns the source file actually carried. All
// downstream branching is on table-level presence, mirroring the optional
// nature of the feed: the generator emits different column sets per season.
type ColumnSet map[string]bool

func (s ColumnSet) Has(cols ...string) bool {
	for _, c := range cols {
		if !s[c] {
			return false
		}
	}
	return true
}

func (s ColumnSet) Add(col string) {
	s[col] = true
}

// Prediction is one upcoming-game row. Every field is optional: a nil
// pointer means the value was absent or unparseable in the source file.
type Prediction struct {
	Week      *int64
	AwayTeam  *string
	HomeTeam  *string
	ModelPick *string
	TotalPick *string
	KickoffET *string

	HomeScore                    *decimal.Decimal
	SpreadConfidence             *decimal.Decimal
	TotalConfidence              *decimal.Decimal
	SpreadWinProb                *decimal.Decimal
	SpreadStdGame                *decimal.Decimal
	SpreadVariance               *decimal.Decimal
	SuggestedUnits               *decimal.Decimal
	EdgeVsSpread                 *decimal.Decimal
	EdgeVsTotal                  *decimal.Decimal
	ProjectedSpreadHomeMinusAway *decimal.Decimal
	ProjectedFirstHalfSpread     *decimal.Decimal
	ProjectedTotalPoints         *decimal.Decimal
	HomeLine                     *decimal.Decimal
	AwayLine                     *decimal.Decimal
	SportsbookHomeSpread         *decimal.Decimal
	SportsbookTotal              *decimal.Decimal
	ConsensusHomeSpread          *decimal.Decimal

	// Derived columns, recomputed on every load.
	Matchup         *string
	BetSide         *string
	PredictedSpread *decimal.Decimal
	KickoffLocal    *string
}

// PredictionTable is the decoded predictions file plus the set of columns
// it carried.
type PredictionTable struct {
	Rows    []Prediction
	Columns ColumnSet
	Source  string
}
