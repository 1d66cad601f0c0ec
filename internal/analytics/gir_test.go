package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"golf-journey/internal/domain"
	"golf-journey/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegulationBudget(t *testing.T) {
	assert.Equal(t, 3, RegulationBudget(5))
	assert.Equal(t, 2, RegulationBudget(4))
	assert.Equal(t, 1, RegulationBudget(3))
	assert.Equal(t, 1, RegulationBudget(6))
	assert.Equal(t, 1, RegulationBudget(0))
}

func TestIsHit(t *testing.T) {
	tests := []struct {
		par, strokes, putts int
		want                bool
	}{
		{par: 4, strokes: 4, putts: 1, want: false},
		{par: 4, strokes: 4, putts: 2, want: true},
		{par: 4, strokes: 3, putts: 1, want: true},
		{par: 4, strokes: 3, putts: 2, want: true},
		{par: 5, strokes: 5, putts: 3, want: true},
		{par: 5, strokes: 8, putts: 3, want: false},
		{par: 5, strokes: 6, putts: 3, want: true},
		{par: 5, strokes: 7, putts: 3, want: false},
		{par: 3, strokes: 5, putts: 3, want: false},
		{par: 3, strokes: 3, putts: 2, want: true},
		{par: 3, strokes: 3, putts: 1, want: false},
		{par: 3, strokes: 2, putts: 0, want: false},
		{par: 3, strokes: 2, putts: 1, want: true},
		{par: 3, strokes: 1, putts: 0, want: true},
		{par: 6, strokes: 3, putts: 2, want: true},
		{par: 6, strokes: 4, putts: 2, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHit(tt.par, tt.strokes, tt.putts), "par %d strokes %d putts %d", tt.par, tt.strokes, tt.putts)
	}
}

func TestIsHit_DependsOnlyOnStrokesToGreen(t *testing.T) {
	for _, par := range []int{3, 4, 5, 6} {
		for strokes := 1; strokes <= 10; strokes++ {
			for putts := 0; putts <= strokes; putts++ {
				// shifting strokes and putts together keeps strokes-to-green fixed
				assert.Equal(t, IsHit(par, strokes, putts), IsHit(par, strokes+3, putts+3))
				assert.Equal(t, strokes-putts <= RegulationBudget(par), IsHit(par, strokes, putts))
			}
		}
	}
}

func newGIREvaluator(store *repository.MemoryStore) *GIREvaluator {
	return NewGIREvaluator(store, NewParResolver(store, zerolog.Nop()), zerolog.Nop())
}

func TestGIREvaluator_Evaluate(t *testing.T) {
	table, err := newGIREvaluator(twoRoundStore()).Evaluate(context.Background(), domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)

	assert.Equal(t, []GIRRow{
		{Hole: 1, Hits: 1, Attempts: 2, HitPercentage: 0.5},
		{Hole: 2, Hits: 0, Attempts: 2, HitPercentage: 0},
		{Hole: 3, Hits: 0, Attempts: 2, HitPercentage: 0},
		{Hole: 4, Hits: 1, Attempts: 2, HitPercentage: 0.5},
	}, table.Rows)
}

func TestGIREvaluator_UsesEachRoundsLayout(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddSnapshots(
		domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 1, Pars: pars(3)},
		domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 2, Pars: pars(5, 4)},
	)
	// 3 strokes, 1 putt: a miss on a par 3, a hit on a par 5
	store.AddScorecards(
		scorecard("short", baseTime, []int{3}, []int{1}),
		scorecard("long", baseTime.Add(time.Hour), []int{3, 4}, []int{1, 2}),
	)

	table, err := newGIREvaluator(store).Evaluate(context.Background(), domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)
	assert.Equal(t, []GIRRow{
		{Hole: 1, Hits: 1, Attempts: 2, HitPercentage: 0.5},
		{Hole: 2, Hits: 1, Attempts: 1, HitPercentage: 1},
	}, table.Rows)
}

func TestGIREvaluator_MissingPar(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddSnapshots(domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 4, Pars: pars(4, 4, 3)})
	store.AddScorecards(scorecard("r1", baseTime, []int{4, 5, 3, 6}, []int{2, 2, 1, 3}))

	_, err := newGIREvaluator(store).Evaluate(context.Background(), domain.RoundFilter{CourseID: testCourse})
	require.ErrorIs(t, err, domain.ErrMissingPar)

	var missing *domain.MissingParError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 4, missing.Hole)
}

func TestGIREvaluator_NotFound(t *testing.T) {
	ctx := context.Background()

	_, err := newGIREvaluator(twoRoundStore()).Evaluate(ctx, domain.RoundFilter{CourseID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// rounds without any stored layout
	store := repository.NewMemoryStore()
	store.AddScorecards(scorecard("r1", baseTime, []int{4}, []int{2}))
	_, err = newGIREvaluator(store).Evaluate(ctx, domain.RoundFilter{CourseID: testCourse})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGIREvaluator_ExcludesObservationsWithoutPutts(t *testing.T) {
	store := twoRoundStore()
	partial := scorecard("r3", baseTime.Add(48*time.Hour), []int{4, 4, 3, 5}, []int{2, 2, 1, 2})
	partial.Holes[2].Putts = nil
	store.AddScorecards(partial)

	table, err := newGIREvaluator(store).Evaluate(context.Background(), domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)
	require.Len(t, table.Excluded, 1)
	assert.Equal(t, 3, table.Excluded[0].Hole)
	assert.Equal(t, 2, table.Rows[2].Attempts)
	assert.Equal(t, 3, table.Rows[0].Attempts)
}

func TestGIREvaluator_NoUsableObservations(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddSnapshots(domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 2, Pars: pars(4, 4)})
	round := scorecard("r1", baseTime, []int{4, 5}, []int{2, 2})
	round.Holes[0].Putts = nil
	round.Holes[1].Strokes = nil
	store.AddScorecards(round)

	_, err := newGIREvaluator(store).Evaluate(context.Background(), domain.RoundFilter{CourseID: testCourse})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
