// Package report joins the per-hole analytics tables into one course report
// and renders it for export.
package report

import (
	"golf-journey/internal/analytics"
	"golf-journey/internal/domain"
	"sort"
)

// HoleRow is one hole of a course report. A nil field means the hole is
// absent from the table that column comes from.
type HoleRow struct {
	Hole            int      `json:"hole" yaml:"hole"`
	Par             *int     `json:"par" yaml:"par"`
	AveragePutts    *float64 `json:"average_putts" yaml:"average_putts"`
	AverageStrokes  *float64 `json:"average_strokes" yaml:"average_strokes"`
	FairwayHits     *int     `json:"fairway_hits" yaml:"fairway_hits"`
	FairwayAttempts *int     `json:"fairway_attempts" yaml:"fairway_attempts"`
	FairwayAccuracy *float64 `json:"fairway_accuracy" yaml:"fairway_accuracy"`
	GIRHits         *int     `json:"gir_hits" yaml:"gir_hits"`
	GIRAttempts     *int     `json:"gir_attempts" yaml:"gir_attempts"`
	GIRPercentage   *float64 `json:"gir_percentage" yaml:"gir_percentage"`
}

type CourseReport struct {
	CourseID       int                            `json:"course_id" yaml:"course_id"`
	HolesCompleted int                            `json:"holes_completed" yaml:"holes_completed"`
	ParLayout      int                            `json:"par_layout" yaml:"par_layout"`
	Rows           []HoleRow                      `json:"rows" yaml:"rows"`
	Excluded       []*domain.MalformedRecordError `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// Assemble joins the tables on hole number. Any table may be nil. Rows cover
// the union of holes present in any table, in hole order.
func Assemble(filter domain.RoundFilter, putting *analytics.AverageTable, scoring *analytics.ScoringTable,
	fairways *analytics.FairwayTable, gir *analytics.GIRTable) *CourseReport {
	rep := &CourseReport{CourseID: filter.CourseID, HolesCompleted: filter.HolesCompleted}
	rows := make(map[int]*HoleRow)
	row := func(hole int) *HoleRow {
		r, ok := rows[hole]
		if !ok {
			r = &HoleRow{Hole: hole}
			rows[hole] = r
		}
		return r
	}
	excluded := newExclusions()

	if putting != nil {
		for _, avg := range putting.Rows {
			row(avg.Hole).AveragePutts = float64Ptr(avg.Average)
		}
		excluded.add(putting.Excluded)
	}
	if scoring != nil {
		rep.ParLayout = scoring.ParLayout
		for _, sr := range scoring.Rows {
			r := row(sr.Hole)
			r.AverageStrokes = float64Ptr(sr.AverageStrokes)
			if sr.Par != nil {
				r.Par = intPtr(*sr.Par)
			}
		}
		excluded.add(scoring.Excluded)
	}
	if fairways != nil {
		for _, fr := range fairways.Rows {
			r := row(fr.Hole)
			r.FairwayHits = intPtr(fr.Hits)
			r.FairwayAttempts = intPtr(fr.Attempts)
			r.FairwayAccuracy = float64Ptr(fr.Accuracy)
		}
		excluded.add(fairways.Excluded)
	}
	if gir != nil {
		for _, gr := range gir.Rows {
			r := row(gr.Hole)
			r.GIRHits = intPtr(gr.Hits)
			r.GIRAttempts = intPtr(gr.Attempts)
			r.GIRPercentage = float64Ptr(gr.HitPercentage)
		}
		excluded.add(gir.Excluded)
	}

	rep.Rows = make([]HoleRow, 0, len(rows))
	for _, r := range rows {
		rep.Rows = append(rep.Rows, *r)
	}
	sort.Slice(rep.Rows, func(i, j int) bool { return rep.Rows[i].Hole < rep.Rows[j].Hole })
	rep.Excluded = excluded.list
	return rep
}

// exclusions collects malformed observations once even when several
// statistics left them out.
type exclusions struct {
	seen map[domain.MalformedRecordError]bool
	list []*domain.MalformedRecordError
}

func newExclusions() *exclusions {
	return &exclusions{seen: make(map[domain.MalformedRecordError]bool)}
}

func (e *exclusions) add(errs []*domain.MalformedRecordError) {
	for _, err := range errs {
		if err == nil || e.seen[*err] {
			continue
		}
		e.seen[*err] = true
		e.list = append(e.list, err)
	}
}

func intPtr(v int) *int { return &v }
func float64Ptr(v float64) *float64 { return &v }
