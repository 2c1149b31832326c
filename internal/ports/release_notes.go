package ports

import (
	"context"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	"github.com/thomas-vilte/relnotes/internal/models"
	"github.com/thomas-vilte/relnotes/internal/services"
)

// ReleaseNotesGenerator runs the release notes pipeline for a version.
type ReleaseNotesGenerator interface {
	Generate(ctx context.Context, version string, opts services.GenerateOptions) (*services.Result, error)
	TrackingIssues(ctx context.Context, version string) (map[int]*models.TrackingIssue, []models.IssueRecord, error)
}

// GeneratorProvider builds a generator for the effective configuration. Diagnostics
// are forwarded to reporter as they happen.
type GeneratorProvider func(ctx context.Context, cfg *config.Config, reporter diagnostics.Reporter) (ReleaseNotesGenerator, error)
