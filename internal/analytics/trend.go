package analytics

import (
	"context"
	"fmt"
	"golf-journey/internal/domain"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

type TrendPoint struct {
	ScorecardID    string    `json:"scorecard_id" yaml:"scorecard_id"`
	StartTime      time.Time `json:"start_time" yaml:"start_time"`
	HolesCompleted int       `json:"holes_completed" yaml:"holes_completed"`
	HolesPlayed    int       `json:"holes_played" yaml:"holes_played"`
	Strokes        int       `json:"strokes" yaml:"strokes"`
	Putts          int       `json:"putts" yaml:"putts"`
	PuttsPerHole   float64   `json:"putts_per_hole" yaml:"putts_per_hole"`
}

type Trend struct {
	CourseID       int          `json:"course_id" yaml:"course_id"`
	HolesCompleted int          `json:"holes_completed" yaml:"holes_completed"`
	Points         []TrendPoint `json:"points" yaml:"points"`
	MeanStrokes    float64      `json:"mean_strokes" yaml:"mean_strokes"`
	StdDevStrokes  float64      `json:"stddev_strokes" yaml:"stddev_strokes"`
}

type TrendAnalyzer struct {
	rounds RoundSource
	logger zerolog.Logger
}

func NewTrendAnalyzer(rounds RoundSource, logger zerolog.Logger) *TrendAnalyzer {
	return &TrendAnalyzer{rounds: rounds, logger: logger}
}

// RoundTrend lists per-round totals oldest first.
func (t *TrendAnalyzer) RoundTrend(ctx context.Context, filter domain.RoundFilter) (*Trend, error) {
	totals, err := t.rounds.RoundTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load round totals: %w", err)
	}
	if len(totals) == 0 {
		return nil, &domain.NotFoundError{What: "rounds", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	trend := &Trend{
		CourseID:       filter.CourseID,
		HolesCompleted: filter.HolesCompleted,
		Points:         make([]TrendPoint, len(totals)),
	}
	strokes := make([]float64, len(totals))
	for i, rt := range totals {
		p := TrendPoint{
			ScorecardID:    rt.ScorecardID,
			StartTime:      rt.StartTime,
			HolesCompleted: rt.HolesCompleted,
			HolesPlayed:    rt.HolesPlayed,
			Strokes:        rt.Strokes,
			Putts:          rt.Putts,
		}
		if rt.HolesPlayed > 0 {
			p.PuttsPerHole = float64(rt.Putts) / float64(rt.HolesPlayed)
		}
		trend.Points[i] = p
		strokes[i] = float64(rt.Strokes)
	}

	trend.MeanStrokes, trend.StdDevStrokes = stat.MeanStdDev(strokes, nil)
	if len(strokes) == 1 {
		// sample deviation of a single round is NaN
		trend.StdDevStrokes = 0
	}

	t.logger.Debug().Int("course_id", filter.CourseID).Int("rounds", len(totals)).Msg("round trend computed")
	return trend, nil
}
