package server

import (
	"context"
	"errors"
	"fmt"
	"golf-journey/internal/analytics"
	"golf-journey/internal/domain"
	"golf-journey/internal/middleware"
	"golf-journey/internal/report"
	"golf-journey/internal/service"
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const GolfStatsServicePath = "/golfstats.v1.GolfStatsService/"

const (
	GetHolePars           = GolfStatsServicePath + "GetHolePars"
	GetPuttingAverage     = GolfStatsServicePath + "GetPuttingAverage"
	GetScoringAverage     = GolfStatsServicePath + "GetScoringAverage"
	GetFairwayOutcomes    = GolfStatsServicePath + "GetFairwayOutcomes"
	GetFairwayAccuracy    = GolfStatsServicePath + "GetFairwayAccuracy"
	GetGreensInRegulation = GolfStatsServicePath + "GetGreensInRegulation"
	GetRoundTrend         = GolfStatsServicePath + "GetRoundTrend"
	GetCourseReport       = GolfStatsServicePath + "GetCourseReport"
	SyncGarminRounds      = GolfStatsServicePath + "SyncGarminRounds"
)

type GolfStatsServer struct {
	stats  *service.StatsService
	ingest *service.IngestService
	logger zerolog.Logger
}

func NewGolfStatsServer(stats *service.StatsService, ingest *service.IngestService, logger zerolog.Logger) *GolfStatsServer {
	return &GolfStatsServer{stats: stats, ingest: ingest, logger: logger}
}

// NewGolfStatsHandler routes every procedure of the service and returns the
// path prefix to mount it under.
func NewGolfStatsHandler(s *GolfStatsServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSONCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetHolePars, connect.NewUnaryHandler(GetHolePars, s.GetHolePars, opts...))
	mux.Handle(GetPuttingAverage, connect.NewUnaryHandler(GetPuttingAverage, s.GetPuttingAverage, opts...))
	mux.Handle(GetScoringAverage, connect.NewUnaryHandler(GetScoringAverage, s.GetScoringAverage, opts...))
	mux.Handle(GetFairwayOutcomes, connect.NewUnaryHandler(GetFairwayOutcomes, s.GetFairwayOutcomes, opts...))
	mux.Handle(GetFairwayAccuracy, connect.NewUnaryHandler(GetFairwayAccuracy, s.GetFairwayAccuracy, opts...))
	mux.Handle(GetGreensInRegulation, connect.NewUnaryHandler(GetGreensInRegulation, s.GetGreensInRegulation, opts...))
	mux.Handle(GetRoundTrend, connect.NewUnaryHandler(GetRoundTrend, s.GetRoundTrend, opts...))
	mux.Handle(GetCourseReport, connect.NewUnaryHandler(GetCourseReport, s.GetCourseReport, opts...))
	mux.Handle(SyncGarminRounds, connect.NewUnaryHandler(SyncGarminRounds, s.SyncGarminRounds, opts...))
	return GolfStatsServicePath, mux
}

func (s *GolfStatsServer) GetHolePars(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[domain.CourseParTable], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	table, err := s.stats.HolePars(ctx, req.Msg.CourseID, req.Msg.HolesCompleted)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(table), nil
}

func (s *GolfStatsServer) GetPuttingAverage(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[analytics.AverageTable], error) {
	return unary(ctx, s, req.Msg, s.stats.PuttingAverage)
}

func (s *GolfStatsServer) GetScoringAverage(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[analytics.ScoringTable], error) {
	return unary(ctx, s, req.Msg, s.stats.ScoringAverage)
}

func (s *GolfStatsServer) GetFairwayOutcomes(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[FairwayOutcomesResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	counts, err := s.stats.FairwayOutcomes(ctx, req.Msg.filter())
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&FairwayOutcomesResponse{
		CourseID:       req.Msg.CourseID,
		HolesCompleted: req.Msg.HolesCompleted,
		Counts:         counts,
	}), nil
}

func (s *GolfStatsServer) GetFairwayAccuracy(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[analytics.FairwayTable], error) {
	return unary(ctx, s, req.Msg, s.stats.FairwayAccuracy)
}

func (s *GolfStatsServer) GetGreensInRegulation(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[analytics.GIRTable], error) {
	return unary(ctx, s, req.Msg, s.stats.GreensInRegulation)
}

func (s *GolfStatsServer) GetRoundTrend(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[analytics.Trend], error) {
	return unary(ctx, s, req.Msg, s.stats.RoundTrend)
}

func (s *GolfStatsServer) GetCourseReport(ctx context.Context, req *connect.Request[StatsRequest]) (*connect.Response[report.CourseReport], error) {
	return unary(ctx, s, req.Msg, s.stats.CourseReport)
}

func (s *GolfStatsServer) SyncGarminRounds(ctx context.Context, req *connect.Request[SyncRequest]) (*connect.Response[service.ImportReport], error) {
	if len(req.Msg.ScorecardIDs) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("scorecard_ids is required"))
	}
	rep, err := s.ingest.SyncScorecards(ctx, req.Msg.ScorecardIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoGarminToken) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(rep), nil
}

func unary[T any](ctx context.Context, s *GolfStatsServer, msg *StatsRequest,
	fn func(context.Context, domain.RoundFilter) (*T, error)) (*connect.Response[T], error) {
	if err := validate(msg); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("course_id", msg.CourseID).
		Int("holes_completed", msg.HolesCompleted).
		Msg("stats request")
	result, err := fn(ctx, msg.filter())
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(result), nil
}

func validate(msg *StatsRequest) error {
	if msg.CourseID <= 0 {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("course_id must be positive, got %d", msg.CourseID))
	}
	if msg.HolesCompleted < 0 {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("holes_completed must not be negative, got %d", msg.HolesCompleted))
	}
	return nil
}

func (s *GolfStatsServer) toConnectError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, domain.ErrMissingPar):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, domain.ErrMalformedRecord):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		s.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msg("request failed")
		return connect.NewError(connect.CodeInternal, err)
	}
}
