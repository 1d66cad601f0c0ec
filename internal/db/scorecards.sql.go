package db

import (
	"context"
	"time"
)

const upsertScorecard = `
INSERT INTO scorecards (id, course_id, course_name, holes_completed, start_time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    course_id       = excluded.course_id,
    course_name     = excluded.course_name,
    holes_completed = excluded.holes_completed,
    start_time      = excluded.start_time,
    updated_at      = excluded.updated_at
`

type UpsertScorecardParams struct {
	ID             string
	CourseID       int64
	CourseName     string
	HolesCompleted int64
	StartTime      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) UpsertScorecard(ctx context.Context, arg UpsertScorecardParams) error {
	_, err := q.db.ExecContext(ctx, upsertScorecard,
		arg.ID,
		arg.CourseID,
		arg.CourseName,
		arg.HolesCompleted,
		arg.StartTime,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteScorecardHoles = `DELETE FROM scorecard_holes WHERE scorecard_id = ?`

func (q *Queries) DeleteScorecardHoles(ctx context.Context, scorecardID string) error {
	_, err := q.db.ExecContext(ctx, deleteScorecardHoles, scorecardID)
	return err
}

const insertScorecardHole = `
INSERT INTO scorecard_holes (scorecard_id, number, strokes, putts, fairway_shot_outcome)
VALUES (?, ?, ?, ?, ?)
`

type InsertScorecardHoleParams struct {
	ScorecardID        string
	Number             int64
	Strokes            *int64
	Putts              *int64
	FairwayShotOutcome *string
}

func (q *Queries) InsertScorecardHole(ctx context.Context, arg InsertScorecardHoleParams) error {
	_, err := q.db.ExecContext(ctx, insertScorecardHole,
		arg.ScorecardID,
		arg.Number,
		arg.Strokes,
		arg.Putts,
		arg.FairwayShotOutcome,
	)
	return err
}

const countScorecards = `SELECT COUNT(*) FROM scorecards WHERE course_id = ?`

func (q *Queries) CountScorecards(ctx context.Context, courseID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countScorecards, courseID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listHoleRecords = `
SELECT s.id, s.course_id, s.holes_completed, s.start_time,
       h.number, h.strokes, h.putts, h.fairway_shot_outcome
FROM scorecards s
JOIN scorecard_holes h ON h.scorecard_id = s.id
WHERE s.course_id = ?1
  AND (?2 = 0 OR s.holes_completed = ?2)
ORDER BY s.start_time ASC, s.rowid ASC, h.number ASC
`

type ListHoleRecordsParams struct {
	CourseID       int64
	HolesCompleted int64
}

type ListHoleRecordsRow struct {
	ScorecardID        string
	CourseID           int64
	HolesCompleted     int64
	StartTime          time.Time
	Number             int64
	Strokes            *int64
	Putts              *int64
	FairwayShotOutcome *string
}

func (q *Queries) ListHoleRecords(ctx context.Context, arg ListHoleRecordsParams) ([]ListHoleRecordsRow, error) {
	rows, err := q.db.QueryContext(ctx, listHoleRecords, arg.CourseID, arg.HolesCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListHoleRecordsRow
	for rows.Next() {
		var i ListHoleRecordsRow
		if err := rows.Scan(
			&i.ScorecardID,
			&i.CourseID,
			&i.HolesCompleted,
			&i.StartTime,
			&i.Number,
			&i.Strokes,
			&i.Putts,
			&i.FairwayShotOutcome,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countFairwayOutcomes = `
SELECT h.number, COALESCE(NULLIF(h.fairway_shot_outcome, ''), 'NO_ENTRY') AS outcome, COUNT(*) AS count
FROM scorecards s
JOIN scorecard_holes h ON h.scorecard_id = s.id
WHERE s.course_id = ?1
  AND (?2 = 0 OR s.holes_completed = ?2)
  AND h.number BETWEEN 1 AND s.holes_completed
GROUP BY h.number, outcome
ORDER BY h.number ASC, outcome ASC
`

type CountFairwayOutcomesParams struct {
	CourseID       int64
	HolesCompleted int64
}

type CountFairwayOutcomesRow struct {
	Number  int64
	Outcome string
	Count   int64
}

func (q *Queries) CountFairwayOutcomes(ctx context.Context, arg CountFairwayOutcomesParams) ([]CountFairwayOutcomesRow, error) {
	rows, err := q.db.QueryContext(ctx, countFairwayOutcomes, arg.CourseID, arg.HolesCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountFairwayOutcomesRow
	for rows.Next() {
		var i CountFairwayOutcomesRow
		if err := rows.Scan(&i.Number, &i.Outcome, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRoundTotals = `
SELECT s.id, s.start_time, s.holes_completed,
       COUNT(h.number)           AS holes_played,
       COALESCE(SUM(h.strokes), 0) AS strokes,
       COALESCE(SUM(h.putts), 0)   AS putts
FROM scorecards s
LEFT JOIN scorecard_holes h ON h.scorecard_id = s.id
WHERE s.course_id = ?1
  AND (?2 = 0 OR s.holes_completed = ?2)
GROUP BY s.id
ORDER BY s.start_time ASC, s.rowid ASC
`

type ListRoundTotalsParams struct {
	CourseID       int64
	HolesCompleted int64
}

type ListRoundTotalsRow struct {
	ScorecardID    string
	StartTime      time.Time
	HolesCompleted int64
	HolesPlayed    int64
	Strokes        int64
	Putts          int64
}

func (q *Queries) ListRoundTotals(ctx context.Context, arg ListRoundTotalsParams) ([]ListRoundTotalsRow, error) {
	rows, err := q.db.QueryContext(ctx, listRoundTotals, arg.CourseID, arg.HolesCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRoundTotalsRow
	for rows.Next() {
		var i ListRoundTotalsRow
		if err := rows.Scan(
			&i.ScorecardID,
			&i.StartTime,
			&i.HolesCompleted,
			&i.HolesPlayed,
			&i.Strokes,
			&i.Putts,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
