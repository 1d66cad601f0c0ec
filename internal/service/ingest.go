package service

import (
	"context"
	"errors"
	"fmt"
	"golf-journey/internal/api"
	"golf-journey/internal/constants"
	"golf-journey/internal/domain"
	"golf-journey/internal/ingest"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoGarminToken is returned by SyncScorecards when no bearer token is configured.
var ErrNoGarminToken = errors.New("GARMIN_API_TOKEN is not set")

type ScorecardStore interface {
	UpsertBatch(ctx context.Context, scorecards []domain.Scorecard) error
}

type SnapshotStore interface {
	UpsertSnapshots(ctx context.Context, snapshots []domain.CourseSnapshot) error
}

type ScorecardFetcher interface {
	HasToken() bool
	GetScorecardDetail(ctx context.Context, scorecardID int64) (*api.ScorecardDetailResponse, error)
	GetRateLimitInfo() api.RateLimitInfo
}

// ImportReport summarizes what one import or sync stored and rejected.
type ImportReport struct {
	Documents  int                            `json:"documents" yaml:"documents"`
	Scorecards int                            `json:"scorecards" yaml:"scorecards"`
	Snapshots  int                            `json:"snapshots" yaml:"snapshots"`
	Rejected   []*domain.MalformedRecordError `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	// RateLimit is the Garmin client's limiter state after a sync.
	RateLimit  *api.RateLimitInfo             `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

type IngestService struct {
	rounds  ScorecardStore
	courses SnapshotStore
	garmin  ScorecardFetcher
	logger  zerolog.Logger
}

func NewIngestService(rounds ScorecardStore, courses SnapshotStore, garmin ScorecardFetcher, logger zerolog.Logger) *IngestService {
	return &IngestService{rounds: rounds, courses: courses, garmin: garmin, logger: logger}
}

// ImportFiles reads scorecard-detail JSON dumps and stores their contents.
// A file that cannot be read or decoded aborts the import before anything
// is stored.
func (s *IngestService) ImportFiles(ctx context.Context, paths []string) (*ImportReport, error) {
	var docs []api.ScorecardDetailResponse
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		fileDocs, err := ingest.DecodeDocuments(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		s.logger.Debug().Str("path", path).Int("documents", len(fileDocs)).Msg("decoded scorecard file")
		docs = append(docs, fileDocs...)
	}

	return s.Import(ctx, docs)
}

// SyncScorecards fetches scorecards by id from Garmin Connect and stores them.
func (s *IngestService) SyncScorecards(ctx context.Context, scorecardIDs []int64) (*ImportReport, error) {
	if s.garmin == nil || !s.garmin.HasToken() {
		return nil, ErrNoGarminToken
	}

	ctx, cancel := context.WithTimeout(ctx, constants.SyncTimeout)
	defer cancel()

	s.logger.Info().Int("scorecards", len(scorecardIDs)).Msg("syncing scorecards from garmin")

	docs := make([]api.ScorecardDetailResponse, len(scorecardIDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.GarminFetchConcurrency)

	for i, id := range scorecardIDs {
		g.Go(func() error {
			detail, err := s.garmin.GetScorecardDetail(gCtx, id)
			if err != nil {
				return fmt.Errorf("scorecard %d: %w", id, err)
			}
			docs[i] = *detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		info := s.garmin.GetRateLimitInfo()
		s.logger.Error().
			Err(err).
			Int("throttled", info.Throttled).
			Dur("retry_after", info.RetryAfter).
			Msg("failed to fetch scorecards from garmin")
		return nil, fmt.Errorf("failed to fetch scorecards: %w", err)
	}

	rep, err := s.Import(ctx, docs)
	if err != nil {
		return nil, err
	}
	info := s.garmin.GetRateLimitInfo()
	rep.RateLimit = &info
	return rep, nil
}

// Import converts documents and stores the conforming scorecards and their
// course snapshots.
func (s *IngestService) Import(ctx context.Context, docs []api.ScorecardDetailResponse) (*ImportReport, error) {
	batch := ingest.ConvertAll(docs)

	for _, bad := range batch.Rejected {
		s.logger.Warn().
			Str("scorecard_id", bad.ScorecardID).
			Int("hole", bad.Hole).
			Str("field", bad.Field).
			Str("reason", bad.Reason).
			Msg("rejecting malformed scorecard")
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.courses.UpsertSnapshots(dbCtx, batch.Snapshots); err != nil {
		return nil, fmt.Errorf("failed to store course snapshots: %w", err)
	}
	if err := s.rounds.UpsertBatch(dbCtx, batch.Scorecards); err != nil {
		return nil, fmt.Errorf("failed to store scorecards: %w", err)
	}

	s.logger.Info().
		Int("documents", len(docs)).
		Int("scorecards", len(batch.Scorecards)).
		Int("snapshots", len(batch.Snapshots)).
		Int("rejected", len(batch.Rejected)).
		Msg("scorecards imported")

	return &ImportReport{
		Documents:  len(docs),
		Scorecards: len(batch.Scorecards),
		Snapshots:  len(batch.Snapshots),
		Rejected:   batch.Rejected,
	}, nil
}
