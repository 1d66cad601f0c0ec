package db

import (
	"time"
)

type Scorecard struct {
	ID             string
	CourseID       int64
	CourseName     string
	HolesCompleted int64
	StartTime      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ScorecardHole struct {
	ScorecardID        string
	Number             int64
	Strokes            *int64
	Putts              *int64
	FairwayShotOutcome *string
}

type CourseSnapshot struct {
	ID             string
	CourseID       int64
	HolesCompleted int64
	CourseName     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CourseSnapshotPar struct {
	SnapshotID string
	HoleNumber int64
	Par        int64
}
