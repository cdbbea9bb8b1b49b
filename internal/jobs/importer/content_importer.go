package importer

import (
	"context"
	"errors"
	"fmt"

	"afterhourshvac/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document the seed command reads.
type SeedFile struct {
	Team  []services.TeamMemberRequest `yaml:"team"`
	Posts []services.CreatePostRequest `yaml:"posts"`
}

type ImportResult struct {
	RecordsProcessed int
	RecordsImported  int
	RecordsSkipped   int
	Errors           []string
}

// ContentImporter loads team members and blog posts one row at a time.
// Rows that already exist are skipped and logged; a failed row does not
// undo the rows before it.
type ContentImporter struct {
	blogSvc  services.BlogService
	teamSvc  services.TeamService
	authorID *uuid.UUID
	logger   zerolog.Logger
}

func NewContentImporter(blogSvc services.BlogService, teamSvc services.TeamService, authorID *uuid.UUID, logger zerolog.Logger) *ContentImporter {
	return &ContentImporter{
		blogSvc:  blogSvc,
		teamSvc:  teamSvc,
		authorID: authorID,
		logger:   logger.With().Str("component", "importer").Logger(),
	}
}

func ParseSeedFile(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

func (i *ContentImporter) Import(ctx context.Context, seed *SeedFile) *ImportResult {
	result := &ImportResult{Errors: []string{}}

	for _, member := range seed.Team {
		result.RecordsProcessed++
		_, err := i.teamSvc.Create(ctx, member)
		i.record(result, "team member", member.Name, err)
	}
	for _, post := range seed.Posts {
		result.RecordsProcessed++
		_, err := i.blogSvc.Create(ctx, i.authorID, post)
		i.record(result, "blog post", post.Title, err)
	}

	i.logger.Info().
		Int("processed", result.RecordsProcessed).
		Int("imported", result.RecordsImported).
		Int("skipped", result.RecordsSkipped).
		Int("failed", len(result.Errors)).
		Msg("content import finished")
	return result
}

func (i *ContentImporter) record(result *ImportResult, kind, name string, err error) {
	switch {
	case err == nil:
		result.RecordsImported++
	case errors.Is(err, services.ErrConflict):
		result.RecordsSkipped++
		i.logger.Info().Str("kind", kind).Str("name", name).Msg("already exists, skipped")
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("%s %q: %v", kind, name, err))
		i.logger.Warn().Err(err).Str("kind", kind).Str("name", name).Msg("import failed")
	}
}
