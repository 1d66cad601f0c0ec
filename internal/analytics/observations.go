package analytics

import (
	"fmt"
	"golf-journey/internal/domain"

	"github.com/rs/zerolog"
)

type requirement struct {
	strokes bool
	putts   bool
}

var (
	needHole         = requirement{}
	needStrokes      = requirement{strokes: true}
	needPutts        = requirement{putts: true}
	needStrokesPutts = requirement{strokes: true, putts: true}
)

// checkRecord returns why a record cannot take part in a statistic, or nil.
// Stroke and putt values are only checked for statistics that read them.
func checkRecord(rec domain.HoleRecord, req requirement) *domain.MalformedRecordError {
	malformed := func(field, reason string) *domain.MalformedRecordError {
		return &domain.MalformedRecordError{ScorecardID: rec.ScorecardID, Hole: rec.Number, Field: field, Reason: reason}
	}

	if rec.Number < 1 || (rec.HolesCompleted > 0 && rec.Number > rec.HolesCompleted) {
		return malformed("number", fmt.Sprintf("outside 1..%d", rec.HolesCompleted))
	}
	if req.strokes && rec.Strokes == nil {
		return malformed("strokes", "missing")
	}
	if req.putts && rec.Putts == nil {
		return malformed("putts", "missing")
	}
	if req == needHole {
		return nil
	}
	if rec.Strokes != nil && *rec.Strokes < 1 {
		return malformed("strokes", "below 1")
	}
	if rec.Putts != nil && *rec.Putts < 0 {
		return malformed("putts", "negative")
	}
	if rec.Strokes != nil && rec.Putts != nil && *rec.Putts > *rec.Strokes {
		return malformed("putts", "exceed strokes")
	}
	return nil
}

// partition splits records into usable ones and reported exclusions.
func partition(records []domain.HoleRecord, req requirement, logger zerolog.Logger) ([]domain.HoleRecord, []*domain.MalformedRecordError) {
	usable := make([]domain.HoleRecord, 0, len(records))
	var excluded []*domain.MalformedRecordError
	for _, rec := range records {
		if bad := checkRecord(rec, req); bad != nil {
			logger.Warn().
				Str("scorecard_id", bad.ScorecardID).
				Int("hole", bad.Hole).
				Str("field", bad.Field).
				Str("reason", bad.Reason).
				Msg("excluding malformed hole observation")
			excluded = append(excluded, bad)
			continue
		}
		usable = append(usable, rec)
	}
	return usable, excluded
}
