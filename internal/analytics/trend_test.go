package analytics

import (
	"context"
	"testing"
	"time"

	"golf-journey/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendAnalyzer_RoundTrend(t *testing.T) {
	store := twoRoundStore()
	// inserted last but played first
	store.AddScorecards(scorecard("r0", baseTime.Add(-24*time.Hour), []int{5, 5, 4, 6}, []int{2, 2, 2, 2}))

	trend, err := NewTrendAnalyzer(store, zerolog.Nop()).RoundTrend(context.Background(), domain.RoundFilter{CourseID: testCourse})
	require.NoError(t, err)

	require.Len(t, trend.Points, 3)
	assert.Equal(t, "r0", trend.Points[0].ScorecardID)
	assert.Equal(t, "r1", trend.Points[1].ScorecardID)
	assert.Equal(t, "r2", trend.Points[2].ScorecardID)
	assert.Equal(t, 18, trend.Points[1].Strokes)
	assert.Equal(t, 8, trend.Points[1].Putts)
	assert.Equal(t, 2.0, trend.Points[1].PuttsPerHole)
	assert.InDelta(t, (20.0+18.0+20.0)/3, trend.MeanStrokes, 1e-9)
	assert.Greater(t, trend.StdDevStrokes, 0.0)
}

func TestTrendAnalyzer_LayoutFilter(t *testing.T) {
	ctx := context.Background()
	store := twoRoundStore()
	store.AddScorecards(scorecard("nine", baseTime.Add(72*time.Hour), []int{4, 4}, []int{2, 1}))
	analyzer := NewTrendAnalyzer(store, zerolog.Nop())

	trend, err := analyzer.RoundTrend(ctx, domain.RoundFilter{CourseID: testCourse, HolesCompleted: 4})
	require.NoError(t, err)
	assert.Len(t, trend.Points, 2)

	trend, err = analyzer.RoundTrend(ctx, domain.RoundFilter{CourseID: testCourse, HolesCompleted: 2})
	require.NoError(t, err)
	require.Len(t, trend.Points, 1)
	assert.Equal(t, 8.0, trend.MeanStrokes)
	assert.Zero(t, trend.StdDevStrokes)
	assert.Equal(t, 1.5, trend.Points[0].PuttsPerHole)

	_, err = analyzer.RoundTrend(ctx, domain.RoundFilter{CourseID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
