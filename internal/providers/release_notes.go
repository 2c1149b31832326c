package providers

import (
	"context"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/diagnostics"
	"github.com/thomas-vilte/relnotes/internal/ports"
	"github.com/thomas-vilte/relnotes/internal/services"
	"github.com/thomas-vilte/relnotes/internal/vcs/github"
)

var _ ports.GeneratorProvider = NewReleaseNotesGenerator

// NewReleaseNotesGenerator wires the GitHub fetcher into the release notes service.
func NewReleaseNotesGenerator(_ context.Context, cfg *config.Config, reporter diagnostics.Reporter) (ports.ReleaseNotesGenerator, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	client := github.NewGitHubClient(cfg.Owner, cfg.Token)
	return services.NewReleaseNotesService(client, cfg, services.WithReporter(reporter)), nil
}
