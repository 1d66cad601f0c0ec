package db

import (
	"context"
	"time"
)

const upsertCourseSnapshot = `
INSERT INTO course_snapshots (id, course_id, holes_completed, course_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (course_id, holes_completed) DO UPDATE SET
    course_name = excluded.course_name,
    updated_at  = excluded.updated_at
RETURNING id
`

type UpsertCourseSnapshotParams struct {
	ID             string
	CourseID       int64
	HolesCompleted int64
	CourseName     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UpsertCourseSnapshot returns the id of the stored row, which is the
// existing id when the layout was already known.
func (q *Queries) UpsertCourseSnapshot(ctx context.Context, arg UpsertCourseSnapshotParams) (string, error) {
	row := q.db.QueryRowContext(ctx, upsertCourseSnapshot,
		arg.ID,
		arg.CourseID,
		arg.HolesCompleted,
		arg.CourseName,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id string
	err := row.Scan(&id)
	return id, err
}

const deleteCourseSnapshotPars = `DELETE FROM course_snapshot_pars WHERE snapshot_id = ?`

func (q *Queries) DeleteCourseSnapshotPars(ctx context.Context, snapshotID string) error {
	_, err := q.db.ExecContext(ctx, deleteCourseSnapshotPars, snapshotID)
	return err
}

const insertCourseSnapshotPar = `
INSERT INTO course_snapshot_pars (snapshot_id, hole_number, par) VALUES (?, ?, ?)
`

type InsertCourseSnapshotParParams struct {
	SnapshotID string
	HoleNumber int64
	Par        int64
}

func (q *Queries) InsertCourseSnapshotPar(ctx context.Context, arg InsertCourseSnapshotParParams) error {
	_, err := q.db.ExecContext(ctx, insertCourseSnapshotPar, arg.SnapshotID, arg.HoleNumber, arg.Par)
	return err
}

const getCourseSnapshot = `
SELECT id, course_id, holes_completed, course_name, created_at, updated_at
FROM course_snapshots
WHERE course_id = ? AND holes_completed = ?
`

type GetCourseSnapshotParams struct {
	CourseID       int64
	HolesCompleted int64
}

func (q *Queries) GetCourseSnapshot(ctx context.Context, arg GetCourseSnapshotParams) (CourseSnapshot, error) {
	row := q.db.QueryRowContext(ctx, getCourseSnapshot, arg.CourseID, arg.HolesCompleted)
	var i CourseSnapshot
	err := row.Scan(
		&i.ID,
		&i.CourseID,
		&i.HolesCompleted,
		&i.CourseName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listCourseSnapshotPars = `
SELECT snapshot_id, hole_number, par
FROM course_snapshot_pars
WHERE snapshot_id = ?
ORDER BY hole_number ASC
`

func (q *Queries) ListCourseSnapshotPars(ctx context.Context, snapshotID string) ([]CourseSnapshotPar, error) {
	rows, err := q.db.QueryContext(ctx, listCourseSnapshotPars, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CourseSnapshotPar
	for rows.Next() {
		var i CourseSnapshotPar
		if err := rows.Scan(&i.SnapshotID, &i.HoleNumber, &i.Par); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCourseLayouts = `
SELECT holes_completed FROM course_snapshots WHERE course_id = ? ORDER BY holes_completed ASC
`

func (q *Queries) ListCourseLayouts(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listCourseLayouts, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var holes int64
		if err := rows.Scan(&holes); err != nil {
			return nil, err
		}
		items = append(items, holes)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
