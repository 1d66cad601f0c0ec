package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"golf-journey/internal/db"
	"golf-journey/internal/domain"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type CourseRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCourseRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CourseRepository {
	return &CourseRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// UpsertSnapshots stores one par layout per (course, holes completed),
// replacing the pars of a layout seen before.
func (r *CourseRepository) UpsertSnapshots(ctx context.Context, snapshots []domain.CourseSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for _, snap := range snapshots {
		id := snap.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		storedID, err := qtx.UpsertCourseSnapshot(ctx, db.UpsertCourseSnapshotParams{
			ID:             id,
			CourseID:       int64(snap.CourseID),
			HolesCompleted: int64(snap.HolesCompleted),
			CourseName:     snap.CourseName,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert course snapshot %d/%d: %w", snap.CourseID, snap.HolesCompleted, err)
		}

		if err := qtx.DeleteCourseSnapshotPars(ctx, storedID); err != nil {
			return fmt.Errorf("failed to clear pars of snapshot %s: %w", storedID, err)
		}

		for _, hp := range snap.Pars {
			err := qtx.InsertCourseSnapshotPar(ctx, db.InsertCourseSnapshotParParams{
				SnapshotID: storedID,
				HoleNumber: int64(hp.Hole),
				Par:        int64(hp.Par),
			})
			if err != nil {
				return fmt.Errorf("failed to insert par of hole %d: %w", hp.Hole, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit course snapshots: %w", err)
	}

	r.logger.Debug().Int("snapshot_count", len(snapshots)).Msg("course snapshots upserted")
	return nil
}

// CourseParTable returns the stored pars of a layout, or nil when the layout is unknown.
func (r *CourseRepository) CourseParTable(ctx context.Context, courseID, holesCompleted int) (*domain.CourseParTable, error) {
	snap, err := r.queries.GetCourseSnapshot(ctx, db.GetCourseSnapshotParams{
		CourseID:       int64(courseID),
		HolesCompleted: int64(holesCompleted),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Int("course_id", courseID).Int("holes_completed", holesCompleted).Msg("failed to get course snapshot")
		return nil, fmt.Errorf("failed to get course snapshot: %w", err)
	}

	pars, err := r.queries.ListCourseSnapshotPars(ctx, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pars of snapshot %s: %w", snap.ID, err)
	}

	table := &domain.CourseParTable{
		CourseID:       courseID,
		HolesCompleted: holesCompleted,
		Pars:           make([]domain.HolePar, len(pars)),
	}
	for i, p := range pars {
		table.Pars[i] = domain.HolePar{Hole: int(p.HoleNumber), Par: int(p.Par)}
	}
	return table, nil
}

// CourseLayouts lists the holes-completed counts with a stored layout, ascending.
func (r *CourseRepository) CourseLayouts(ctx context.Context, courseID int) ([]int, error) {
	layouts, err := r.queries.ListCourseLayouts(ctx, int64(courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to list course layouts: %w", err)
	}

	result := make([]int, len(layouts))
	for i, l := range layouts {
		result[i] = int(l)
	}
	return result, nil
}
