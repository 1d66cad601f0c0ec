package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ScorecardDetailResponse struct {
	ScorecardDetails []ScorecardDetail `json:"scorecardDetails"`
	CourseSnapshots  []CourseSnapshot  `json:"courseSnapshots"`
}

type ScorecardDetail struct {
	Scorecard      Scorecard      `json:"scorecard"`
	ScorecardStats ScorecardStats `json:"scorecardStats"`
}

type Scorecard struct {
	ID               int64  `json:"id"`
	CustomerID       string `json:"customerId"`
	PlayerProfileID  int64  `json:"playerProfileId"`
	RoundPlayerName  string `json:"roundPlayerName"`
	CourseGlobalID   int    `json:"courseGlobalId"`
	CourseSnapshotID int64  `json:"courseSnapshotId"`
	ScoreType        string `json:"scoreType"`

	// e.g. "2020-07-04T13:02:11.0"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	HolesCompleted   int    `json:"holesCompleted"`
	Strokes          *int   `json:"strokes"`
	InProgress       bool   `json:"inProgress"`
	ExcludeFromStats bool   `json:"excludeFromStats"`
	Holes            []Hole `json:"holes"`
	DistanceWalked   int    `json:"distanceWalked"`
	StepsTaken       int    `json:"stepsTaken"`
}

type Hole struct {
	Number             int    `json:"number"`
	Strokes            *int   `json:"strokes"`
	Putts              *int   `json:"putts"`
	Penalties          *int   `json:"penalties"`
	FairwayShotOutcome string `json:"fairwayShotOutcome"`
	LastModifiedDt     string `json:"lastModifiedDt"`
}

type ScorecardStats struct {
	Round RoundStats `json:"round"`
}

type RoundStats struct {
	Strokes *int `json:"strokes"`
	Putts   *int `json:"putts"`
}

type CourseSnapshot struct {
	CourseSnapshotID int64    `json:"courseSnapshotId"`
	CourseGlobalID   int      `json:"courseGlobalId"`
	Name             string   `json:"name"`
	HolePars         HolePars `json:"holePars"`
}

// HolePars is the par of each hole in order. Garmin encodes it as a digit
// string ("443545..."); a plain integer array is accepted too. Every par
// must be at least 1.
type HolePars []int

func (p *HolePars) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		pars := make(HolePars, 0, len(s))
		for i, r := range s {
			if r < '1' || r > '9' {
				return fmt.Errorf("holePars: invalid digit %q at %d", r, i)
			}
			pars = append(pars, int(r-'0'))
		}
		*p = pars
		return nil
	}

	var pars []int
	if err := json.Unmarshal(data, &pars); err != nil {
		return fmt.Errorf("holePars: %w", err)
	}
	for i, par := range pars {
		if par < 1 {
			return fmt.Errorf("holePars: par %d below 1 at %d", par, i)
		}
	}
	*p = pars
	return nil
}
