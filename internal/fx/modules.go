package fx

import (
	"database/sql"
	"golf-journey/internal/analytics"
	"golf-journey/internal/api"
	"golf-journey/internal/config"
	"golf-journey/internal/database"
	"golf-journey/internal/db"
	"golf-journey/internal/logger"
	"golf-journey/internal/repository"
	"golf-journey/internal/server"
	"golf-journey/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideRoundSource(repo *repository.RoundRepository) analytics.RoundSource {
	return repo
}

func ProvideParSource(repo *repository.CourseRepository) analytics.ParSource {
	return repo
}

func ProvideScorecardStore(repo *repository.RoundRepository) service.ScorecardStore {
	return repo
}

func ProvideSnapshotStore(repo *repository.CourseRepository) service.SnapshotStore {
	return repo
}

func ProvideFetcher(client *api.GarminClient) service.ScorecardFetcher {
	return client
}

// Analytics wires the statistics over whatever RoundSource and ParSource
// are in the graph.
var Analytics = fx.Options(
	fx.Provide(analytics.NewParResolver),
	fx.Provide(analytics.NewAverager),
	fx.Provide(analytics.NewFairwayClassifier),
	fx.Provide(analytics.NewGIREvaluator),
	fx.Provide(analytics.NewTrendAnalyzer),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewIngestService),
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewRoundRepository),
	fx.Provide(repository.NewCourseRepository),
	fx.Provide(ProvideRoundSource),
	fx.Provide(ProvideParSource),
	fx.Provide(ProvideScorecardStore),
	fx.Provide(ProvideSnapshotStore),
	// api client
	fx.Provide(api.NewGarminClient),
	fx.Provide(ProvideFetcher),
	// analytics + svc
	Analytics,
	// server
	fx.Provide(server.NewGolfStatsServer),
)
