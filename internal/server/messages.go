package server

import (
	"golf-journey/internal/domain"
)

// StatsRequest selects a course and optionally one layout; HolesCompleted 0
// spans every layout.
type StatsRequest struct {
	CourseID       int `json:"course_id"`
	HolesCompleted int `json:"holes_completed"`
}

func (r *StatsRequest) filter() domain.RoundFilter {
	return domain.RoundFilter{CourseID: r.CourseID, HolesCompleted: r.HolesCompleted}
}

type FairwayOutcomesResponse struct {
	CourseID       int                   `json:"course_id"`
	HolesCompleted int                   `json:"holes_completed"`
	Counts         []domain.OutcomeCount `json:"counts"`
}

type SyncRequest struct {
	ScorecardIDs []int64 `json:"scorecard_ids"`
}
