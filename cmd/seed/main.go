// Command seed imports team members and blog posts from a YAML file.
//
//	go run ./cmd/seed -file seed.yaml -author jordan@afterhourshvac.ca
package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"os"
	"time"

	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/jobs/importer"
	"afterhourshvac/internal/logging"
	"afterhourshvac/internal/repositories"
	"afterhourshvac/internal/services"
	"afterhourshvac/pkg/database"

	"github.com/google/uuid"
)

func main() {
	file := flag.String("file", "seed.yaml", "YAML file with team and posts")
	authorEmail := flag.String("author", "", "email of the user credited with imported posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.Logging, cfg.App)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
	}
	seed, err := importer.ParseSeedFile(data)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid seed file")
	}

	if err := database.Migrate(cfg.Database.URL, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	redisClient := caching.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	cacheSvc := caching.NewRedisCacheService(redisClient)

	minioSvc, err := services.NewMinioService(cfg.Minio)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MinIO service")
	}

	var authorID *uuid.UUID
	if *authorEmail != "" {
		author, err := repositories.NewUserRepo(pool).GetByEmail(ctx, *authorEmail)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			logger.Warn().Str("email", *authorEmail).Msg("author not found, posts will have no author")
		case err != nil:
			logger.Fatal().Err(err).Msg("failed to look up author")
		default:
			authorID = &author.ID
		}
	}

	blogSvc := services.NewBlogService(repositories.NewBlogPostRepo(pool), cacheSvc, logger)
	teamSvc := services.NewTeamService(repositories.NewTeamMemberRepo(pool), cacheSvc, minioSvc, logger)

	result := importer.NewContentImporter(blogSvc, teamSvc, authorID, logger).Import(ctx, seed)
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			logger.Error().Msg(msg)
		}
		os.Exit(1)
	}
}
