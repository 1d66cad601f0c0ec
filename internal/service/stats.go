package service

import (
	"context"
	"errors"
	"golf-journey/internal/analytics"
	"golf-journey/internal/constants"
	"golf-journey/internal/domain"
	"golf-journey/internal/report"
	"time"

	"github.com/rs/zerolog"
)

// StatsService is the read side shared by the server and the CLI.
type StatsService struct {
	rounds   analytics.RoundSource
	resolver *analytics.ParResolver
	averager *analytics.Averager
	fairways *analytics.FairwayClassifier
	gir      *analytics.GIREvaluator
	trend    *analytics.TrendAnalyzer
	logger   zerolog.Logger
}

func NewStatsService(
	rounds analytics.RoundSource,
	resolver *analytics.ParResolver,
	averager *analytics.Averager,
	fairways *analytics.FairwayClassifier,
	gir *analytics.GIREvaluator,
	trend *analytics.TrendAnalyzer,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		rounds:   rounds,
		resolver: resolver,
		averager: averager,
		fairways: fairways,
		gir:      gir,
		trend:    trend,
		logger:   logger,
	}
}

// HolePars returns a layout's par table; holesCompleted 0 picks the
// course's longest layout. A course with neither rounds nor layouts is
// reported as an unknown course.
func (s *StatsService) HolePars(ctx context.Context, courseID, holesCompleted int) (*domain.CourseParTable, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	layout := holesCompleted
	if layout == 0 {
		var err error
		layout, err = s.resolver.DefaultLayout(ctx, courseID)
		if err != nil {
			return nil, s.unknownCourse(ctx, courseID, holesCompleted, err)
		}
	}
	table, err := s.resolver.Resolve(ctx, courseID, layout)
	if err != nil {
		return nil, s.unknownCourse(ctx, courseID, holesCompleted, err)
	}
	return table, nil
}

func (s *StatsService) unknownCourse(ctx context.Context, courseID, holesCompleted int, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	has, herr := s.rounds.HasRounds(ctx, courseID)
	if herr != nil {
		s.logger.Warn().Err(herr).Int("course_id", courseID).Msg("failed to check course rounds")
		return err
	}
	if has {
		s.logger.Warn().Int("course_id", courseID).Int("holes_completed", holesCompleted).Msg("course has rounds but no stored par layout")
		return err
	}
	if _, lerr := s.resolver.DefaultLayout(ctx, courseID); lerr == nil {
		return err
	}
	return &domain.NotFoundError{What: "course", CourseID: courseID, HolesCompleted: holesCompleted}
}

func (s *StatsService) PuttingAverage(ctx context.Context, filter domain.RoundFilter) (*analytics.AverageTable, error) {
	return timed(ctx, s.logger, "putting average", filter, s.averager.PuttingAverage)
}

func (s *StatsService) ScoringAverage(ctx context.Context, filter domain.RoundFilter) (*analytics.ScoringTable, error) {
	return timed(ctx, s.logger, "scoring average", filter, s.averager.ScoringAverage)
}

func (s *StatsService) FairwayOutcomes(ctx context.Context, filter domain.RoundFilter) ([]domain.OutcomeCount, error) {
	return timed(ctx, s.logger, "fairway outcomes", filter, s.fairways.OutcomeCounts)
}

func (s *StatsService) FairwayAccuracy(ctx context.Context, filter domain.RoundFilter) (*analytics.FairwayTable, error) {
	return timed(ctx, s.logger, "fairway accuracy", filter, s.fairways.Accuracy)
}

func (s *StatsService) GreensInRegulation(ctx context.Context, filter domain.RoundFilter) (*analytics.GIRTable, error) {
	return timed(ctx, s.logger, "greens in regulation", filter, s.gir.Evaluate)
}

func (s *StatsService) RoundTrend(ctx context.Context, filter domain.RoundFilter) (*analytics.Trend, error) {
	return timed(ctx, s.logger, "round trend", filter, s.trend.RoundTrend)
}

// CourseReport joins every per-hole statistic. Any failing statistic fails
// the report.
func (s *StatsService) CourseReport(ctx context.Context, filter domain.RoundFilter) (*report.CourseReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	putting, err := s.averager.PuttingAverage(ctx, filter)
	if err != nil {
		return nil, err
	}
	scoring, err := s.averager.ScoringAverage(ctx, filter)
	if err != nil {
		return nil, err
	}
	fairways, err := s.fairways.Accuracy(ctx, filter)
	if err != nil {
		return nil, err
	}
	gir, err := s.gir.Evaluate(ctx, filter)
	if err != nil {
		return nil, err
	}

	rep := report.Assemble(filter, putting, scoring, fairways, gir)
	s.logger.Info().
		Int("course_id", filter.CourseID).
		Int("holes_completed", filter.HolesCompleted).
		Int("holes", len(rep.Rows)).
		Int("excluded", len(rep.Excluded)).
		Msg("course report assembled")
	return rep, nil
}

func timed[T any](ctx context.Context, logger zerolog.Logger, name string, filter domain.RoundFilter,
	fn func(context.Context, domain.RoundFilter) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := fn(ctx, filter)
	if err != nil {
		logger.Debug().Err(err).Str("stat", name).Int("course_id", filter.CourseID).Msg("statistic failed")
		return result, err
	}
	logger.Debug().
		Str("stat", name).
		Int("course_id", filter.CourseID).
		Int("holes_completed", filter.HolesCompleted).
		Dur("took", time.Since(start)).
		Msg("statistic computed")
	return result, nil
}
