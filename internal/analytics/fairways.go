package analytics

import (
	"context"
	"fmt"
	"golf-journey/internal/domain"
	"sort"

	"github.com/rs/zerolog"
)

type FairwayRow struct {
	Hole     int     `json:"hole" yaml:"hole"`
	Hits     int     `json:"hits" yaml:"hits"`
	Attempts int     `json:"attempts" yaml:"attempts"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

type FairwayTable struct {
	CourseID       int                            `json:"course_id" yaml:"course_id"`
	HolesCompleted int                            `json:"holes_completed" yaml:"holes_completed"`
	Rows           []FairwayRow                   `json:"rows" yaml:"rows"`
	Excluded       []*domain.MalformedRecordError `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

type FairwayClassifier struct {
	rounds RoundSource
	logger zerolog.Logger
}

func NewFairwayClassifier(rounds RoundSource, logger zerolog.Logger) *FairwayClassifier {
	return &FairwayClassifier{rounds: rounds, logger: logger}
}

// OutcomeCounts returns the raw (hole, outcome) counts of the matching rounds.
// Holes numbered outside their round are not counted.
func (c *FairwayClassifier) OutcomeCounts(ctx context.Context, filter domain.RoundFilter) ([]domain.OutcomeCount, error) {
	counts, err := c.rounds.FairwayOutcomeCounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count fairway outcomes: %w", err)
	}
	if len(counts) == 0 {
		return nil, &domain.NotFoundError{What: "rounds", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}
	return counts, nil
}

// Accuracy classifies the recorded tee-shot outcome of every hole played.
// Holes numbered outside their round are excluded and reported.
func (c *FairwayClassifier) Accuracy(ctx context.Context, filter domain.RoundFilter) (*FairwayTable, error) {
	records, err := c.rounds.HoleRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load hole records: %w", err)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{What: "rounds", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	usable, excluded := partition(records, needHole, c.logger)
	if len(usable) == 0 {
		return nil, &domain.NotFoundError{What: "usable fairway observations", CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	}

	counts := countOutcomes(usable)
	table := &FairwayTable{
		CourseID:       filter.CourseID,
		HolesCompleted: filter.HolesCompleted,
		Rows:           Classify(counts),
		Excluded:       excluded,
	}

	c.logger.Debug().
		Int("course_id", filter.CourseID).
		Int("outcome_rows", len(counts)).
		Int("holes", len(table.Rows)).
		Int("excluded", len(excluded)).
		Msg("fairway accuracy computed")

	return table, nil
}

func countOutcomes(records []domain.HoleRecord) []domain.OutcomeCount {
	type key struct {
		hole    int
		outcome domain.FairwayOutcome
	}
	index := make(map[key]int)
	var counts []domain.OutcomeCount
	for _, rec := range records {
		outcome := rec.FairwayShotOutcome
		if outcome == "" {
			outcome = domain.FairwayNoEntry
		}
		k := key{rec.Number, outcome}
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, domain.OutcomeCount{Hole: rec.Number, Outcome: outcome})
		}
		counts[i].Count++
	}
	return counts
}

// Classify reduces outcome counts to per-hole accuracy. NO_FAIRWAY and
// NO_ENTRY are not attempts and are dropped; a hole left with no attempts is
// omitted. A hole with attempts but no HIT has zero hits.
func Classify(counts []domain.OutcomeCount) []FairwayRow {
	byHole := make(map[int]*FairwayRow)
	for _, oc := range counts {
		if !oc.Outcome.IsAttempt() || oc.Count <= 0 {
			continue
		}
		row, ok := byHole[oc.Hole]
		if !ok {
			row = &FairwayRow{Hole: oc.Hole}
			byHole[oc.Hole] = row
		}
		row.Attempts += oc.Count
		if oc.Outcome == domain.FairwayHit {
			row.Hits += oc.Count
		}
	}

	rows := make([]FairwayRow, 0, len(byHole))
	for _, row := range byHole {
		row.Accuracy = float64(row.Hits) / float64(row.Attempts)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Hole < rows[j].Hole })
	return rows
}
