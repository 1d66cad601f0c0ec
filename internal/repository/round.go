package repository

import (
	"context"
	"database/sql"
	"fmt"
	"golf-journey/internal/constants"
	"golf-journey/internal/db"
	"golf-journey/internal/domain"
	"time"

	"github.com/rs/zerolog"
)

type RoundRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRoundRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RoundRepository {
	return &RoundRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// UpsertBatch stores scorecards and replaces their hole observations.
func (r *RoundRepository) UpsertBatch(ctx context.Context, scorecards []domain.Scorecard) error {
	if len(scorecards) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for i := 0; i < len(scorecards); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(scorecards) {
			end = len(scorecards)
		}

		for _, sc := range scorecards[i:end] {
			createdAt := sc.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			err := qtx.UpsertScorecard(ctx, db.UpsertScorecardParams{
				ID:             sc.ID,
				CourseID:       int64(sc.CourseID),
				CourseName:     sc.CourseName,
				HolesCompleted: int64(sc.HolesCompleted),
				StartTime:      sc.StartTime.UTC(),
				CreatedAt:      createdAt,
				UpdatedAt:      now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert scorecard %s: %w", sc.ID, err)
			}

			if err := qtx.DeleteScorecardHoles(ctx, sc.ID); err != nil {
				return fmt.Errorf("failed to clear holes of scorecard %s: %w", sc.ID, err)
			}

			for _, h := range sc.Holes {
				err := qtx.InsertScorecardHole(ctx, db.InsertScorecardHoleParams{
					ScorecardID:        sc.ID,
					Number:             int64(h.Number),
					Strokes:            toNullInt(h.Strokes),
					Putts:              toNullInt(h.Putts),
					FairwayShotOutcome: toNullOutcome(h.FairwayShotOutcome),
				})
				if err != nil {
					return fmt.Errorf("failed to insert hole %d of scorecard %s: %w", h.Number, sc.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scorecards: %w", err)
	}

	r.logger.Debug().Int("scorecard_count", len(scorecards)).Msg("scorecards upserted")
	return nil
}

// HoleRecords flattens every hole of the matching rounds, oldest round first.
func (r *RoundRepository) HoleRecords(ctx context.Context, filter domain.RoundFilter) ([]domain.HoleRecord, error) {
	rows, err := r.queries.ListHoleRecords(ctx, db.ListHoleRecordsParams{
		CourseID:       int64(filter.CourseID),
		HolesCompleted: int64(filter.HolesCompleted),
	})
	if err != nil {
		r.logger.Error().Err(err).Int("course_id", filter.CourseID).Msg("failed to list hole records")
		return nil, fmt.Errorf("failed to list hole records: %w", err)
	}

	result := make([]domain.HoleRecord, len(rows))
	for i, row := range rows {
		result[i] = domain.HoleRecord{
			ScorecardID:        row.ScorecardID,
			CourseID:           int(row.CourseID),
			HolesCompleted:     int(row.HolesCompleted),
			StartTime:          row.StartTime,
			Number:             int(row.Number),
			Strokes:            fromNullInt(row.Strokes),
			Putts:              fromNullInt(row.Putts),
			FairwayShotOutcome: fromNullOutcome(row.FairwayShotOutcome),
		}
	}
	return result, nil
}

func (r *RoundRepository) FairwayOutcomeCounts(ctx context.Context, filter domain.RoundFilter) ([]domain.OutcomeCount, error) {
	rows, err := r.queries.CountFairwayOutcomes(ctx, db.CountFairwayOutcomesParams{
		CourseID:       int64(filter.CourseID),
		HolesCompleted: int64(filter.HolesCompleted),
	})
	if err != nil {
		r.logger.Error().Err(err).Int("course_id", filter.CourseID).Msg("failed to count fairway outcomes")
		return nil, fmt.Errorf("failed to count fairway outcomes: %w", err)
	}

	result := make([]domain.OutcomeCount, len(rows))
	for i, row := range rows {
		result[i] = domain.OutcomeCount{
			Hole:    int(row.Number),
			Outcome: domain.FairwayOutcome(row.Outcome),
			Count:   int(row.Count),
		}
	}
	return result, nil
}

func (r *RoundRepository) RoundTotals(ctx context.Context, filter domain.RoundFilter) ([]domain.RoundTotals, error) {
	rows, err := r.queries.ListRoundTotals(ctx, db.ListRoundTotalsParams{
		CourseID:       int64(filter.CourseID),
		HolesCompleted: int64(filter.HolesCompleted),
	})
	if err != nil {
		r.logger.Error().Err(err).Int("course_id", filter.CourseID).Msg("failed to list round totals")
		return nil, fmt.Errorf("failed to list round totals: %w", err)
	}

	result := make([]domain.RoundTotals, len(rows))
	for i, row := range rows {
		result[i] = domain.RoundTotals{
			ScorecardID:    row.ScorecardID,
			StartTime:      row.StartTime,
			HolesCompleted: int(row.HolesCompleted),
			HolesPlayed:    int(row.HolesPlayed),
			Strokes:        int(row.Strokes),
			Putts:          int(row.Putts),
		}
	}
	return result, nil
}

func (r *RoundRepository) HasRounds(ctx context.Context, courseID int) (bool, error) {
	count, err := r.queries.CountScorecards(ctx, int64(courseID))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toNullInt(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func fromNullInt(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func toNullOutcome(o domain.FairwayOutcome) *string {
	if o == "" {
		return nil
	}
	s := string(o)
	return &s
}

func fromNullOutcome(s *string) domain.FairwayOutcome {
	if s == nil {
		return ""
	}
	return domain.FairwayOutcome(*s)
}
