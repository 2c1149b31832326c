package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
	"github.com/thomas-vilte/relnotes/internal/logger"
	"github.com/thomas-vilte/relnotes/internal/models"
	"github.com/thomas-vilte/relnotes/internal/relnotes"
	"github.com/thomas-vilte/relnotes/internal/vcs"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

var _ vcs.IssueFetcher = (*GitHubClient)(nil)

const (
	perPage            = 100
	maxConcurrentPages = 4
)

type IssuesService interface {
	ListMilestones(ctx context.Context, owner, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
}

func NewGitHubClient(owner, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		issuesService: client.Issues,
		owner:         owner,
	}
}

func NewGitHubClientWithServices(issuesService IssuesService, owner string) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
	}
}

// FetchMilestoneIssues returns the issues and merged pull requests of the milestone
// matching milestoneQuery, merged and deduplicated by number.
//
// Both come from the milestone issue listing, which has no result cap. Unmerged pull
// requests are dropped.
func (ghc *GitHubClient) FetchMilestoneIssues(ctx context.Context, milestoneQuery, repoName string) ([]models.IssueRecord, error) {
	log := logger.FromContext(ctx)

	milestone, err := ghc.FindMilestone(ctx, milestoneQuery, repoName)
	if err != nil {
		return nil, err
	}

	log.Debug("milestone resolved",
		"owner", ghc.owner,
		"repo", repoName,
		"query", milestoneQuery,
		"milestone", milestone.Title,
		"milestone_number", milestone.Number)

	listed, err := ghc.listMilestone(ctx, repoName, milestone)
	if err != nil {
		return nil, err
	}

	var issues, pulls []models.IssueRecord
	for _, issue := range listed {
		if issue.IsPullRequest() && issue.GetPullRequestLinks().GetMergedAt().IsZero() {
			continue
		}
		record, err := toRecord(issue)
		if err != nil {
			return nil, err
		}
		if issue.IsPullRequest() {
			pulls = append(pulls, record)
		} else {
			issues = append(issues, record)
		}
	}

	records := relnotes.MergeRecords(issues, pulls)

	log.Info("milestone records fetched",
		"repo", repoName,
		"milestone", milestone.Title,
		"issues", len(issues),
		"pull_requests", len(pulls),
		"total", len(records))

	return records, nil
}

// FindMilestone resolves the single milestone whose title contains query.
func (ghc *GitHubClient) FindMilestone(ctx context.Context, query, repoName string) (*models.Milestone, error) {
	opts := &github.MilestoneListOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var matches []models.Milestone
	for {
		milestones, resp, err := ghc.issuesService.ListMilestones(ctx, ghc.owner, repoName, opts)
		if err != nil {
			return nil, ghc.mapError(resp, err, "list milestones", repoName)
		}

		for _, m := range milestones {
			if strings.Contains(m.GetTitle(), query) {
				matches = append(matches, models.Milestone{
					Number: m.GetNumber(),
					Title:  m.GetTitle(),
					URL:    m.GetHTMLURL(),
				})
			}
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	switch len(matches) {
	case 0:
		return nil, domainErrors.ErrMilestoneNotFound.
			WithContext("query", query).
			WithContext("repo", ghc.repoPath(repoName))
	case 1:
		return &matches[0], nil
	}

	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, m.Title)
	}
	return nil, domainErrors.ErrAmbiguousMilestone.
		WithContext("query", query).
		WithContext("repo", ghc.repoPath(repoName)).
		WithContext("matches", strings.Join(titles, ", "))
}

// listMilestone reads the first page, then the remaining ones concurrently.
func (ghc *GitHubClient) listMilestone(ctx context.Context, repoName string, milestone *models.Milestone) ([]*github.Issue, error) {
	first, resp, err := ghc.listMilestonePage(ctx, repoName, milestone, 0)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.NextPage == 0 {
		return first, nil
	}

	if resp.LastPage == 0 {
		return ghc.followPages(ctx, repoName, milestone, first, resp.NextPage)
	}
	last := resp.LastPage

	pages := make([][]*github.Issue, last+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for p := resp.NextPage; p <= last; p++ {
		g.Go(func() error {
			issues, _, err := ghc.listMilestonePage(gctx, repoName, milestone, p)
			pages[p] = issues
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := first
	for _, issues := range pages {
		all = append(all, issues...)
	}
	return all, nil
}

// followPages reads pages one at a time when the response carries no last page.
func (ghc *GitHubClient) followPages(ctx context.Context, repoName string, milestone *models.Milestone, all []*github.Issue, next int) ([]*github.Issue, error) {
	for next != 0 {
		issues, resp, err := ghc.listMilestonePage(ctx, repoName, milestone, next)
		if err != nil {
			return nil, err
		}
		all = append(all, issues...)
		if resp == nil {
			break
		}
		next = resp.NextPage
	}
	return all, nil
}

func (ghc *GitHubClient) listMilestonePage(ctx context.Context, repoName string, milestone *models.Milestone, page int) ([]*github.Issue, *github.Response, error) {
	opts := &github.IssueListByRepoOptions{
		Milestone: fmt.Sprintf("%d", milestone.Number),
		State:     "all",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	issues, resp, err := ghc.issuesService.ListByRepo(ctx, ghc.owner, repoName, opts)
	if err != nil {
		return nil, resp, ghc.mapError(resp, err, "list milestone issues", repoName)
	}
	return issues, resp, nil
}

// toRecord converts an API issue once, at the boundary.
func toRecord(issue *github.Issue) (models.IssueRecord, error) {
	if issue == nil {
		return models.IssueRecord{}, domainErrors.ErrInvalidIssueRecord.WithContext("reason", "nil issue")
	}

	state, ok := models.ParseIssueState(issue.GetState())
	if !ok {
		return models.IssueRecord{}, domainErrors.ErrInvalidIssueRecord.
			WithContext("number", issue.GetNumber()).
			WithContext("reason", fmt.Sprintf("unknown state %q", issue.GetState()))
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	record := models.IssueRecord{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
		Body:   issue.GetBody(),
		State:  state,
		Labels: labels,
	}
	if err := record.Validate(); err != nil {
		return models.IssueRecord{}, err
	}
	return record, nil
}

func (ghc *GitHubClient) mapError(resp *github.Response, err error, operation, repoName string) error {
	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithContext("operation", operation)
		case http.StatusForbidden:
			if resp.Rate.Remaining == 0 && resp.Rate.Limit > 0 {
				return domainErrors.ErrGitHubRateLimit.
					WithContext("operation", operation).
					WithContext("reset", resp.Rate.Reset.Time.String())
			}
			return domainErrors.ErrGitHubInsufficientPerms.
				WithContext("operation", operation).
				WithContext("repo", ghc.repoPath(repoName))
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithContext("operation", operation).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithContext("operation", operation).
				WithContext("repo", ghc.repoPath(repoName))
		}
	}
	return domainErrors.ErrFetchIssues.
		WithError(err).
		WithContext("operation", operation).
		WithContext("repo", ghc.repoPath(repoName))
}

func (ghc *GitHubClient) repoPath(repoName string) string {
	return fmt.Sprintf("%s/%s", ghc.owner, repoName)
}
