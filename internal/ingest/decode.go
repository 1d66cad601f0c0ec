// Package ingest turns Garmin scorecard-detail documents into scorecards and
// course snapshots, quarantining documents that do not conform.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"golf-journey/internal/api"
	"golf-journey/internal/domain"
	"strconv"
	"strings"
	"time"
)

// Batch is the conversion result of one or more documents.
type Batch struct {
	Scorecards []domain.Scorecard
	Snapshots  []domain.CourseSnapshot
	Rejected   []*domain.MalformedRecordError
}

func (b *Batch) merge(other Batch) {
	b.Scorecards = append(b.Scorecards, other.Scorecards...)
	b.Snapshots = append(b.Snapshots, other.Snapshots...)
	b.Rejected = append(b.Rejected, other.Rejected...)
}

// DecodeDocuments parses a file holding either one scorecard-detail document
// or an array of them.
func DecodeDocuments(data []byte) ([]api.ScorecardDetailResponse, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] == '[' {
		var docs []api.ScorecardDetailResponse
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode document array: %w", err)
		}
		return docs, nil
	}

	var doc api.ScorecardDetailResponse
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return []api.ScorecardDetailResponse{doc}, nil
}

// ConvertAll converts every document and merges the results.
func ConvertAll(docs []api.ScorecardDetailResponse) Batch {
	var batch Batch
	for i := range docs {
		batch.merge(Convert(&docs[i]))
	}
	return batch
}

// Convert maps one document onto domain types. Scorecards failing
// validation are rejected as a whole; a hole missing strokes or putts is
// kept with the value absent.
func Convert(doc *api.ScorecardDetailResponse) Batch {
	var batch Batch

	courses := make(map[int]api.CourseSnapshot, len(doc.CourseSnapshots))
	for _, cs := range doc.CourseSnapshots {
		courses[cs.CourseGlobalID] = cs
	}

	layouts := make(map[[2]int]bool)
	for _, detail := range doc.ScorecardDetails {
		sc, bad := convertScorecard(detail.Scorecard)
		if bad != nil {
			batch.Rejected = append(batch.Rejected, bad)
			continue
		}

		course, ok := courses[sc.CourseID]
		if ok {
			sc.CourseName = course.Name
		}
		batch.Scorecards = append(batch.Scorecards, sc)

		key := [2]int{sc.CourseID, sc.HolesCompleted}
		if !ok || len(course.HolePars) == 0 || layouts[key] {
			continue
		}
		layouts[key] = true
		batch.Snapshots = append(batch.Snapshots, Snapshot(course, sc.HolesCompleted))
	}

	return batch
}

// Snapshot builds the par table of one layout, keeping the first
// holesCompleted pars. A shorter holePars list is stored as is; resolving
// that layout then fails on the first hole without a par.
func Snapshot(course api.CourseSnapshot, holesCompleted int) domain.CourseSnapshot {
	pars := course.HolePars
	if len(pars) > holesCompleted {
		pars = pars[:holesCompleted]
	}

	snap := domain.CourseSnapshot{
		CourseID:       course.CourseGlobalID,
		CourseName:     course.Name,
		HolesCompleted: holesCompleted,
		Pars:           make([]domain.HolePar, len(pars)),
	}
	for i, par := range pars {
		snap.Pars[i] = domain.HolePar{Hole: i + 1, Par: par}
	}
	return snap
}

func convertScorecard(raw api.Scorecard) (domain.Scorecard, *domain.MalformedRecordError) {
	id := strconv.FormatInt(raw.ID, 10)
	reject := func(hole int, field, reason string) (domain.Scorecard, *domain.MalformedRecordError) {
		return domain.Scorecard{}, &domain.MalformedRecordError{ScorecardID: id, Hole: hole, Field: field, Reason: reason}
	}

	if raw.ID <= 0 {
		return reject(0, "id", "missing")
	}
	if raw.CourseGlobalID <= 0 {
		return reject(0, "courseGlobalId", "missing")
	}
	if raw.HolesCompleted <= 0 {
		return reject(0, "holesCompleted", "must be positive")
	}
	start, err := ParseStartTime(raw.StartTime)
	if err != nil {
		return reject(0, "startTime", err.Error())
	}

	sc := domain.Scorecard{
		ID:             id,
		CourseID:       raw.CourseGlobalID,
		HolesCompleted: raw.HolesCompleted,
		StartTime:      start,
		Holes:          make([]domain.Hole, 0, len(raw.Holes)),
	}

	seen := make(map[int]bool, len(raw.Holes))
	for _, h := range raw.Holes {
		if h.Number < 1 || h.Number > raw.HolesCompleted {
			return reject(h.Number, "number", fmt.Sprintf("outside 1..%d", raw.HolesCompleted))
		}
		if seen[h.Number] {
			return reject(h.Number, "number", "duplicate")
		}
		seen[h.Number] = true

		sc.Holes = append(sc.Holes, domain.Hole{
			Number:             h.Number,
			Strokes:            h.Strokes,
			Putts:              h.Putts,
			FairwayShotOutcome: domain.FairwayOutcome(strings.ToUpper(strings.TrimSpace(h.FairwayShotOutcome))),
		})
	}

	return sc, nil
}

var startTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// ParseStartTime reads Garmin's zone-less timestamps ("2020-07-04T13:02:11.0")
// as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing")
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
