package analytics

import (
	"context"
	"fmt"
	"golf-journey/internal/domain"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Attribute selects the numeric hole attribute to average.
type Attribute string

const (
	AttributePutts   Attribute = "putts"
	AttributeStrokes Attribute = "strokes"
)

type HoleAverage struct {
	Hole         int     `json:"hole" yaml:"hole"`
	Average      float64 `json:"average" yaml:"average"`
	Observations int     `json:"observations" yaml:"observations"`
}

type AverageTable struct {
	CourseID       int                            `json:"course_id" yaml:"course_id"`
	HolesCompleted int                            `json:"holes_completed" yaml:"holes_completed"`
	Attribute      Attribute                      `json:"attribute" yaml:"attribute"`
	Rows           []HoleAverage                  `json:"rows" yaml:"rows"`
	Excluded       []*domain.MalformedRecordError `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// ScoringRow is an average-strokes row left-joined with the hole's par.
// Par is nil when the layout has no entry for the hole.
type ScoringRow struct {
	Hole           int     `json:"hole" yaml:"hole"`
	AverageStrokes float64 `json:"average_strokes" yaml:"average_strokes"`
	Observations   int     `json:"observations" yaml:"observations"`
	Par            *int    `json:"par" yaml:"par"`
}

type ScoringTable struct {
	CourseID       int                            `json:"course_id" yaml:"course_id"`
	HolesCompleted int                            `json:"holes_completed" yaml:"holes_completed"`
	ParLayout      int                            `json:"par_layout" yaml:"par_layout"`
	Rows           []ScoringRow                   `json:"rows" yaml:"rows"`
	Excluded       []*domain.MalformedRecordError `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

type Averager struct {
	rounds   RoundSource
	resolver *ParResolver
	logger   zerolog.Logger
}

func NewAverager(rounds RoundSource, resolver *ParResolver, logger zerolog.Logger) *Averager {
	return &Averager{rounds: rounds, resolver: resolver, logger: logger}
}

func (a *Averager) PuttingAverage(ctx context.Context, filter domain.RoundFilter) (*AverageTable, error) {
	return a.Average(ctx, filter, AttributePutts)
}

// Average computes the per-hole mean of attr over the matching rounds,
// ordered by hole number.
func (a *Averager) Average(ctx context.Context, filter domain.RoundFilter, attr Attribute) (*AverageTable, error) {
	var req requirement
	var value func(domain.HoleRecord) float64
	switch attr {
	case AttributePutts:
		req, value = needPutts, func(r domain.HoleRecord) float64 { return float64(*r.Putts) }
	case AttributeStrokes:
		req, value = needStrokes, func(r domain.HoleRecord) float64 { return float64(*r.Strokes) }
	default:
		return nil, fmt.Errorf("unknown hole attribute %q", attr)
	}

	records, err := a.rounds.HoleRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load hole records: %w", err)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{What: "rounds", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	usable, excluded := partition(records, req, a.logger)
	if len(usable) == 0 {
		return nil, &domain.NotFoundError{What: "usable " + string(attr) + " observations", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	// records arrive in round order, so each hole's series stays chronological
	series := make(map[int][]float64)
	for _, rec := range usable {
		series[rec.Number] = append(series[rec.Number], value(rec))
	}

	holes := make([]int, 0, len(series))
	for hole := range series {
		holes = append(holes, hole)
	}
	sort.Ints(holes)

	table := &AverageTable{
		CourseID:       filter.CourseID,
		HolesCompleted: filter.HolesCompleted,
		Attribute:      attr,
		Rows:           make([]HoleAverage, len(holes)),
		Excluded:       excluded,
	}
	for i, hole := range holes {
		table.Rows[i] = HoleAverage{
			Hole:         hole,
			Average:      stat.Mean(series[hole], nil),
			Observations: len(series[hole]),
		}
	}

	a.logger.Debug().
		Int("course_id", filter.CourseID).
		Str("attribute", string(attr)).
		Int("holes", len(table.Rows)).
		Int("excluded", len(excluded)).
		Msg("hole averages computed")

	return table, nil
}

// ScoringAverage averages strokes per hole and joins each row with the par
// of the filter's layout, or the course's longest layout when the filter
// spans every layout.
func (a *Averager) ScoringAverage(ctx context.Context, filter domain.RoundFilter) (*ScoringTable, error) {
	avg, err := a.Average(ctx, filter, AttributeStrokes)
	if err != nil {
		return nil, err
	}

	layout := filter.HolesCompleted
	if layout == 0 {
		layout, err = a.resolver.DefaultLayout(ctx, filter.CourseID)
		if err != nil {
			return nil, err
		}
	}

	pars, err := a.resolver.Resolve(ctx, filter.CourseID, layout)
	if err != nil {
		return nil, err
	}

	return &ScoringTable{
		CourseID:       filter.CourseID,
		HolesCompleted: filter.HolesCompleted,
		ParLayout:      layout,
		Rows:           JoinPars(avg.Rows, pars),
		Excluded:       avg.Excluded,
	}, nil
}

// JoinPars left-joins averages with a par table on hole number. Every
// average keeps its row; holes absent from pars get a nil Par.
func JoinPars(averages []HoleAverage, pars *domain.CourseParTable) []ScoringRow {
	rows := make([]ScoringRow, len(averages))
	for i, avg := range averages {
		rows[i] = ScoringRow{
			Hole:           avg.Hole,
			AverageStrokes: avg.Average,
			Observations:   avg.Observations,
		}
		if par, ok := pars.Par(avg.Hole); ok {
			rows[i].Par = &par
		}
	}
	return rows
}
