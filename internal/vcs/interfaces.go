package vcs

import (
	"context"

	"github.com/thomas-vilte/relnotes/internal/models"
)

// IssueFetcher supplies the records of a milestone.
type IssueFetcher interface {
	// FetchMilestoneIssues returns the issues and pull requests of the single milestone
	// matching milestoneQuery in repoName, merged, sorted ascending by number and
	// deduplicated by number. More than one matching milestone is an error.
	FetchMilestoneIssues(ctx context.Context, milestoneQuery, repoName string) ([]models.IssueRecord, error)
}
