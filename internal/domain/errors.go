package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMissingPar      = errors.New("missing par")
	ErrMalformedRecord = errors.New("malformed record")
)

// NotFoundError reports that no course layout or round data matched a query.
type NotFoundError struct {
	What           string
	CourseID       int
	HolesCompleted int
}

func (e *NotFoundError) Error() string {
	if e.HolesCompleted > 0 {
		return fmt.Sprintf("%s not found for course %d (%d holes)", e.What, e.CourseID, e.HolesCompleted)
	}
	return fmt.Sprintf("%s not found for course %d", e.What, e.CourseID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MissingParError reports a hole that has no par entry in its layout.
type MissingParError struct {
	CourseID       int
	HolesCompleted int
	Hole           int
}

func (e *MissingParError) Error() string {
	return fmt.Sprintf("no par for hole %d of course %d (%d holes)", e.Hole, e.CourseID, e.HolesCompleted)
}

func (e *MissingParError) Is(target error) bool { return target == ErrMissingPar }

// MalformedRecordError describes a scorecard or hole left out of an
// aggregate or an import.
type MalformedRecordError struct {
	ScorecardID string `json:"scorecard_id" yaml:"scorecard_id"`
	Hole        int    `json:"hole,omitempty" yaml:"hole,omitempty"`
	Field       string `json:"field" yaml:"field"`
	Reason      string `json:"reason" yaml:"reason"`
}

func (e *MalformedRecordError) Error() string {
	if e.Hole > 0 {
		return fmt.Sprintf("scorecard %s hole %d: %s %s", e.ScorecardID, e.Hole, e.Field, e.Reason)
	}
	return fmt.Sprintf("scorecard %s: %s %s", e.ScorecardID, e.Field, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }
