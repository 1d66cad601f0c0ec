package analytics

import (
	"context"
	"testing"

	"golf-journey/internal/domain"
	"golf-journey/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		counts []domain.OutcomeCount
		want   []FairwayRow
	}{
		{
			name: "excluded outcomes do not change accuracy",
			counts: []domain.OutcomeCount{
				{Hole: 1, Outcome: domain.FairwayHit, Count: 61},
				{Hole: 1, Outcome: domain.FairwayLeft, Count: 35},
				{Hole: 1, Outcome: domain.FairwayNone, Count: 10},
				{Hole: 1, Outcome: domain.FairwayNoEntry, Count: 500},
			},
			want: []FairwayRow{{Hole: 1, Hits: 61, Attempts: 96, Accuracy: 61.0 / 96.0}},
		},
		{
			name: "no hit recorded counts as zero hits",
			counts: []domain.OutcomeCount{
				{Hole: 2, Outcome: domain.FairwayRight, Count: 3},
				{Hole: 2, Outcome: domain.FairwayShort, Count: 1},
			},
			want: []FairwayRow{{Hole: 2, Hits: 0, Attempts: 4, Accuracy: 0}},
		},
		{
			name: "hole without attempts is omitted",
			counts: []domain.OutcomeCount{
				{Hole: 3, Outcome: domain.FairwayNone, Count: 12},
				{Hole: 4, Outcome: domain.FairwayHit, Count: 2},
				{Hole: 4, Outcome: domain.FairwayLong, Count: 2},
				{Hole: 5, Outcome: domain.FairwayNoEntry, Count: 1},
			},
			want: []FairwayRow{{Hole: 4, Hits: 2, Attempts: 4, Accuracy: 0.5}},
		},
		{
			name: "rows sorted by hole",
			counts: []domain.OutcomeCount{
				{Hole: 9, Outcome: domain.FairwayHit, Count: 1},
				{Hole: 1, Outcome: domain.FairwayHit, Count: 1},
			},
			want: []FairwayRow{
				{Hole: 1, Hits: 1, Attempts: 1, Accuracy: 1},
				{Hole: 9, Hits: 1, Attempts: 1, Accuracy: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.counts))
		})
	}
}

func TestClassify_SyntheticAccuracy(t *testing.T) {
	rows := Classify([]domain.OutcomeCount{
		{Hole: 1, Outcome: domain.FairwayHit, Count: 61},
		{Hole: 1, Outcome: domain.FairwayLeft, Count: 35},
		{Hole: 1, Outcome: domain.FairwayNone, Count: 10},
	})
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.6354, rows[0].Accuracy, 1e-4)
}

func TestFairwayClassifier_Accuracy(t *testing.T) {
	store := repository.NewMemoryStore()
	first := scorecard("r1", baseTime, []int{4, 3}, []int{2, 1})
	first.Holes[0].FairwayShotOutcome = domain.FairwayHit
	first.Holes[1].FairwayShotOutcome = domain.FairwayNone
	second := scorecard("r2", baseTime, []int{5, 3}, []int{2, 2})
	second.Holes[0].FairwayShotOutcome = domain.FairwayLeft
	// hole 2 left unrecorded
	store.AddScorecards(first, second)

	classifier := NewFairwayClassifier(store, zerolog.Nop())
	ctx := context.Background()

	counts, err := classifier.OutcomeCounts(ctx, domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)
	assert.Len(t, counts, 4)

	table, err := classifier.Accuracy(ctx, domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)
	assert.Equal(t, []FairwayRow{{Hole: 1, Hits: 1, Attempts: 2, Accuracy: 0.5}}, table.Rows)

	_, err = classifier.Accuracy(ctx, domain.RoundFilter{CourseID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFairwayClassifier_ExcludesHolesOutsideRound(t *testing.T) {
	store := repository.NewMemoryStore()
	round := scorecard("r1", baseTime, []int{4, 3}, []int{2, 1})
	round.Holes[0].FairwayShotOutcome = domain.FairwayHit
	round.Holes = append(round.Holes, domain.Hole{Number: 9, Strokes: intPtr(4), Putts: intPtr(2), FairwayShotOutcome: domain.FairwayLeft})
	store.AddScorecards(round)

	classifier := NewFairwayClassifier(store, zerolog.Nop())
	ctx := context.Background()
	filter := domain.RoundFilter{CourseID: testCourse}

	table, err := classifier.Accuracy(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, []FairwayRow{{Hole: 1, Hits: 1, Attempts: 1, Accuracy: 1}}, table.Rows)
	require.Len(t, table.Excluded, 1)
	assert.Equal(t, 9, table.Excluded[0].Hole)
	assert.Equal(t, "number", table.Excluded[0].Field)

	counts, err := classifier.OutcomeCounts(ctx, filter)
	require.NoError(t, err)
	for _, c := range counts {
		assert.NotEqual(t, 9, c.Hole)
	}
}

func TestFairwayClassifier_NoUsableObservations(t *testing.T) {
	store := repository.NewMemoryStore()
	round := scorecard("r1", baseTime, []int{4}, []int{2})
	round.Holes[0].Number = 3
	store.AddScorecards(round)

	_, err := NewFairwayClassifier(store, zerolog.Nop()).Accuracy(context.Background(), domain.RoundFilter{CourseID: testCourse})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
