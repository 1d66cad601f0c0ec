package analytics

import (
	"context"
	"fmt"
	"golf-journey/internal/domain"
	"sort"

	"github.com/rs/zerolog"
)

// RegulationBudget is the number of strokes allowed to reach the green:
// 3 on a par 5, 2 on a par 4 and 1 on anything else.
func RegulationBudget(par int) int {
	switch par {
	case 5:
		return 3
	case 4:
		return 2
	default:
		return 1
	}
}

// IsHit reports whether a hole played in strokes with putts reached the
// green in regulation. Reaching it exactly on budget is a hit.
func IsHit(par, strokes, putts int) bool {
	return (strokes-putts)-RegulationBudget(par) <= 0
}

type GIRRow struct {
	Hole     int `json:"hole" yaml:"hole"`
	Hits     int `json:"hits" yaml:"hits"`
	Attempts int `json:"attempts" yaml:"attempts"`
	// HitPercentage is Hits/Attempts, a fraction in [0, 1].
	HitPercentage float64 `json:"hit_percentage" yaml:"hit_percentage"`
}

type GIRTable struct {
	CourseID       int                            `json:"course_id" yaml:"course_id"`
	HolesCompleted int                            `json:"holes_completed" yaml:"holes_completed"`
	Rows           []GIRRow                       `json:"rows" yaml:"rows"`
	Excluded       []*domain.MalformedRecordError `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

type GIREvaluator struct {
	rounds   RoundSource
	resolver *ParResolver
	logger   zerolog.Logger
}

func NewGIREvaluator(rounds RoundSource, resolver *ParResolver, logger zerolog.Logger) *GIREvaluator {
	return &GIREvaluator{rounds: rounds, resolver: resolver, logger: logger}
}

// Evaluate classifies every observation against the par of its own round's
// layout and aggregates a hit percentage per hole. A hole without a par
// aborts the whole table.
func (e *GIREvaluator) Evaluate(ctx context.Context, filter domain.RoundFilter) (*GIRTable, error) {
	records, err := e.rounds.HoleRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load hole records: %w", err)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{What: "rounds", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	usable, excluded := partition(records, needStrokesPutts, e.logger)
	if len(usable) == 0 {
		return nil, &domain.NotFoundError{What: "usable green observations", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}
	pars := newParCache(e.resolver, filter.CourseID)

	byHole := make(map[int]*GIRRow)
	for _, rec := range usable {
		table, err := pars.table(ctx, rec.HolesCompleted)
		if err != nil {
			return nil, err
		}
		par, ok := table.Par(rec.Number)
		if !ok {
			e.logger.Error().
				Int("course_id", filter.CourseID).
				Int("holes_completed", rec.HolesCompleted).
				Int("hole", rec.Number).
				Msg("hole has no par")
			return nil, &domain.MissingParError{CourseID: filter.CourseID, HolesCompleted: rec.HolesCompleted, Hole: rec.Number}
		}

		row, ok := byHole[rec.Number]
		if !ok {
			row = &GIRRow{Hole: rec.Number}
			byHole[rec.Number] = row
		}
		row.Attempts++
		if IsHit(par, *rec.Strokes, *rec.Putts) {
			row.Hits++
		}
	}

	rows := make([]GIRRow, 0, len(byHole))
	for _, row := range byHole {
		row.HitPercentage = float64(row.Hits) / float64(row.Attempts)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Hole < rows[j].Hole })

	e.logger.Debug().
		Int("course_id", filter.CourseID).
		Int("holes", len(rows)).
		Int("excluded", len(excluded)).
		Msg("greens in regulation computed")

	return &GIRTable{
		CourseID:       filter.CourseID,
		HolesCompleted: filter.HolesCompleted,
		Rows:           rows,
		Excluded:       excluded,
	}, nil
}
