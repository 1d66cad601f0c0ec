package analytics

import (
	"fmt"
	"golf-journey/internal/domain"
	"golf-journey/internal/repository"
	"time"
)

const testCourse = 17772

func intPtr(v int) *int { return &v }

func pars(values ...int) []domain.HolePar {
	out := make([]domain.HolePar, len(values))
	for i, v := range values {
		out[i] = domain.HolePar{Hole: i + 1, Par: v}
	}
	return out
}

// scorecard builds a round on testCourse covering holes 1..len(strokes).
func scorecard(id string, start time.Time, strokes, putts []int) domain.Scorecard {
	sc := domain.Scorecard{
		ID:             id,
		CourseID:       testCourse,
		HolesCompleted: len(strokes),
		StartTime:      start,
	}
	for i := range strokes {
		sc.Holes = append(sc.Holes, domain.Hole{
			Number:  i + 1,
			Strokes: intPtr(strokes[i]),
			Putts:   intPtr(putts[i]),
		})
	}
	return sc
}

var baseTime = time.Date(2021, 5, 1, 9, 0, 0, 0, time.UTC)

// twoRoundStore is one course with pars [4,4,3,5] and two four-hole rounds.
func twoRoundStore() *repository.MemoryStore {
	store := repository.NewMemoryStore()
	store.AddSnapshots(domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 4, Pars: pars(4, 4, 3, 5)})
	store.AddScorecards(
		scorecard("r1", baseTime, []int{4, 5, 3, 6}, []int{2, 2, 1, 3}),
		scorecard("r2", baseTime.Add(24*time.Hour), []int{5, 4, 4, 7}, []int{2, 1, 2, 3}),
	)
	return store
}

func scorecardID(i int) string { return fmt.Sprintf("sc-%03d", i) }
