// Package analytics derives per-hole golf statistics from stored rounds:
// putting and scoring averages, fairway accuracy and greens in regulation.
// Every call recomputes from its sources; nothing is cached between calls.
package analytics

import (
	"context"
	"golf-journey/internal/domain"
)

// RoundSource is the read side of the round repository.
type RoundSource interface {
	// HoleRecords returns the flattened hole observations of the matching
	// rounds, ordered by round start time, then storage order, then hole number.
	HoleRecords(ctx context.Context, filter domain.RoundFilter) ([]domain.HoleRecord, error)
	// FairwayOutcomeCounts groups observations by (hole, outcome). Unrecorded
	// outcomes are reported as NO_ENTRY.
	FairwayOutcomeCounts(ctx context.Context, filter domain.RoundFilter) ([]domain.OutcomeCount, error)
	RoundTotals(ctx context.Context, filter domain.RoundFilter) ([]domain.RoundTotals, error)
	HasRounds(ctx context.Context, courseID int) (bool, error)
}

// ParSource looks up stored course layouts. CourseParTable returns nil
// without error when the layout is unknown.
type ParSource interface {
	CourseParTable(ctx context.Context, courseID, holesCompleted int) (*domain.CourseParTable, error)
	CourseLayouts(ctx context.Context, courseID int) ([]int, error)
}
