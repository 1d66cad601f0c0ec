package repository

import (
	"context"
	"golf-journey/internal/domain"
	"sort"
	"sync"
)

// MemoryStore serves fixed scorecards and course snapshots from memory with
// the same ordering and grouping rules as the SQLite repositories.
type MemoryStore struct {
	mu         sync.RWMutex
	scorecards []domain.Scorecard
	snapshots  map[layoutKey]domain.CourseSnapshot
}

type layoutKey struct {
	courseID       int
	holesCompleted int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[layoutKey]domain.CourseSnapshot)}
}

// AddScorecards appends scorecards, replacing any with the same id.
func (m *MemoryStore) AddScorecards(scorecards ...domain.Scorecard) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sc := range scorecards {
		replaced := false
		for i := range m.scorecards {
			if m.scorecards[i].ID == sc.ID {
				m.scorecards[i] = sc
				replaced = true
				break
			}
		}
		if !replaced {
			m.scorecards = append(m.scorecards, sc)
		}
	}
}

func (m *MemoryStore) AddSnapshots(snapshots ...domain.CourseSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, snap := range snapshots {
		m.snapshots[layoutKey{snap.CourseID, snap.HolesCompleted}] = snap
	}
}

// UpsertBatch and UpsertSnapshots let the store stand in for the SQLite
// repositories on the ingestion side.
func (m *MemoryStore) UpsertBatch(_ context.Context, scorecards []domain.Scorecard) error {
	m.AddScorecards(scorecards...)
	return nil
}

func (m *MemoryStore) UpsertSnapshots(_ context.Context, snapshots []domain.CourseSnapshot) error {
	m.AddSnapshots(snapshots...)
	return nil
}

// matching returns the selected scorecards oldest first; ties keep insertion order.
func (m *MemoryStore) matching(filter domain.RoundFilter) []domain.Scorecard {
	var out []domain.Scorecard
	for _, sc := range m.scorecards {
		if sc.CourseID != filter.CourseID {
			continue
		}
		if filter.HolesCompleted != 0 && sc.HolesCompleted != filter.HolesCompleted {
			continue
		}
		out = append(out, sc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (m *MemoryStore) HoleRecords(_ context.Context, filter domain.RoundFilter) ([]domain.HoleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []domain.HoleRecord
	for _, sc := range m.matching(filter) {
		holes := append([]domain.Hole(nil), sc.Holes...)
		sort.SliceStable(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })
		for _, h := range holes {
			records = append(records, domain.HoleRecord{
				ScorecardID:        sc.ID,
				CourseID:           sc.CourseID,
				HolesCompleted:     sc.HolesCompleted,
				StartTime:          sc.StartTime,
				Number:             h.Number,
				Strokes:            h.Strokes,
				Putts:              h.Putts,
				FairwayShotOutcome: h.FairwayShotOutcome,
			})
		}
	}
	return records, nil
}

func (m *MemoryStore) FairwayOutcomeCounts(_ context.Context, filter domain.RoundFilter) ([]domain.OutcomeCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type key struct {
		hole    int
		outcome domain.FairwayOutcome
	}
	counts := make(map[key]int)
	for _, sc := range m.matching(filter) {
		for _, h := range sc.Holes {
			if h.Number < 1 || h.Number > sc.HolesCompleted {
				continue
			}
			outcome := h.FairwayShotOutcome
			if outcome == "" {
				outcome = domain.FairwayNoEntry
			}
			counts[key{h.Number, outcome}]++
		}
	}

	result := make([]domain.OutcomeCount, 0, len(counts))
	for k, c := range counts {
		result = append(result, domain.OutcomeCount{Hole: k.hole, Outcome: k.outcome, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Hole != result[j].Hole {
			return result[i].Hole < result[j].Hole
		}
		return result[i].Outcome < result[j].Outcome
	})
	return result, nil
}

func (m *MemoryStore) RoundTotals(_ context.Context, filter domain.RoundFilter) ([]domain.RoundTotals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matching := m.matching(filter)
	result := make([]domain.RoundTotals, 0, len(matching))
	for _, sc := range matching {
		totals := domain.RoundTotals{
			ScorecardID:    sc.ID,
			StartTime:      sc.StartTime,
			HolesCompleted: sc.HolesCompleted,
			HolesPlayed:    len(sc.Holes),
		}
		for _, h := range sc.Holes {
			if h.Strokes != nil {
				totals.Strokes += *h.Strokes
			}
			if h.Putts != nil {
				totals.Putts += *h.Putts
			}
		}
		result = append(result, totals)
	}
	return result, nil
}

func (m *MemoryStore) HasRounds(_ context.Context, courseID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.matching(domain.RoundFilter{CourseID: courseID})) > 0, nil
}

func (m *MemoryStore) CourseParTable(_ context.Context, courseID, holesCompleted int) (*domain.CourseParTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[layoutKey{courseID, holesCompleted}]
	if !ok {
		return nil, nil
	}
	pars := append([]domain.HolePar(nil), snap.Pars...)
	sort.Slice(pars, func(i, j int) bool { return pars[i].Hole < pars[j].Hole })
	return &domain.CourseParTable{CourseID: courseID, HolesCompleted: holesCompleted, Pars: pars}, nil
}

func (m *MemoryStore) CourseLayouts(_ context.Context, courseID int) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var layouts []int
	for k := range m.snapshots {
		if k.courseID == courseID {
			layouts = append(layouts, k.holesCompleted)
		}
	}
	sort.Ints(layouts)
	return layouts, nil
}
