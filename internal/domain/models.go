package domain

import (
	"time"
)

type FairwayOutcome string

const (
	FairwayHit       FairwayOutcome = "HIT"
	FairwayLeft      FairwayOutcome = "LEFT"
	FairwayRight     FairwayOutcome = "RIGHT"
	FairwayShort     FairwayOutcome = "SHORT"
	FairwayLong      FairwayOutcome = "LONG"
	FairwayNone      FairwayOutcome = "NO_FAIRWAY" // hole has no fairway, e.g. a short par-3
	FairwayNoEntry   FairwayOutcome = "NO_ENTRY"   // not recorded
	fairwayUndefined FairwayOutcome = ""
)

// IsAttempt reports whether the outcome represents a tee shot at a fairway.
func (o FairwayOutcome) IsAttempt() bool {
	switch o {
	case FairwayNone, FairwayNoEntry, fairwayUndefined:
		return false
	}
	return true
}

// Scorecard is one played round.
type Scorecard struct {
	ID             string
	CourseID       int
	CourseName     string
	HolesCompleted int
	StartTime      time.Time
	Holes          []Hole
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Hole is a single hole observation. Strokes and Putts are nil when the
// source did not record them.
type Hole struct {
	Number             int
	Strokes            *int
	Putts              *int
	FairwayShotOutcome FairwayOutcome
}

// CourseSnapshot carries the par layout of a course for one holes-completed count.
type CourseSnapshot struct {
	ID             string
	CourseID       int
	CourseName     string
	HolesCompleted int
	Pars           []HolePar
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type HolePar struct {
	Hole int `json:"hole" yaml:"hole"`
	Par  int `json:"par" yaml:"par"`
}

// CourseParTable is the resolved par layout, ordered by hole.
type CourseParTable struct {
	CourseID       int       `json:"course_id" yaml:"course_id"`
	HolesCompleted int       `json:"holes_completed" yaml:"holes_completed"`
	Pars           []HolePar `json:"pars" yaml:"pars"`
}

// Par returns the par of a hole and whether the table has it.
func (t *CourseParTable) Par(hole int) (int, bool) {
	if t == nil {
		return 0, false
	}
	// dense 1..N after resolution
	if hole >= 1 && hole <= len(t.Pars) && t.Pars[hole-1].Hole == hole {
		return t.Pars[hole-1].Par, true
	}
	for _, hp := range t.Pars {
		if hp.Hole == hole {
			return hp.Par, true
		}
	}
	return 0, false
}

// HoleRecord is a hole observation flattened together with its round.
type HoleRecord struct {
	ScorecardID        string
	CourseID           int
	HolesCompleted     int
	StartTime          time.Time
	Number             int
	Strokes            *int
	Putts              *int
	FairwayShotOutcome FairwayOutcome
}

type OutcomeCount struct {
	Hole    int            `json:"hole" yaml:"hole"`
	Outcome FairwayOutcome `json:"outcome" yaml:"outcome"`
	Count   int            `json:"count" yaml:"count"`
}

// RoundTotals summarises one scorecard for trend output.
type RoundTotals struct {
	ScorecardID    string
	StartTime      time.Time
	HolesCompleted int
	HolesPlayed    int
	Strokes        int
	Putts          int
}

// RoundFilter selects the rounds an aggregate is computed over.
// HolesCompleted == 0 selects every layout of the course.
type RoundFilter struct {
	CourseID       int
	HolesCompleted int
}
