package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
)

const (
	testOwner = "rust-lang"
	testRepo  = "rust"
)

func milestone(number int, title string) *github.Milestone {
	return &github.Milestone{
		Number:  github.Ptr(number),
		Title:   github.Ptr(title),
		HTMLURL: github.Ptr(fmt.Sprintf("https://github.com/rust-lang/rust/milestone/%d", number)),
	}
}

func apiIssue(number int, title, state string, labels ...string) *github.Issue {
	issue := &github.Issue{
		Number:  github.Ptr(number),
		Title:   github.Ptr(title),
		HTMLURL: github.Ptr(fmt.Sprintf("https://github.com/rust-lang/rust/issues/%d", number)),
		Body:    github.Ptr("body of " + title),
		State:   github.Ptr(state),
	}
	for _, l := range labels {
		issue.Labels = append(issue.Labels, &github.Label{Name: github.Ptr(l)})
	}
	return issue
}

func apiPull(number int, title string, labels ...string) *github.Issue {
	pr := apiIssue(number, title, "closed", labels...)
	pr.HTMLURL = github.Ptr(fmt.Sprintf("https://github.com/rust-lang/rust/pull/%d", number))
	pr.PullRequestLinks = &github.PullRequestLinks{
		URL:      github.Ptr("https://api.github.com/pulls"),
		MergedAt: &github.Timestamp{Time: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
	}
	return pr
}

func unmergedPull(number int, title string) *github.Issue {
	pr := apiPull(number, title)
	pr.PullRequestLinks.MergedAt = nil
	return pr
}

func issuePage(n int) interface{} {
	return mock.MatchedBy(func(opts *github.IssueListByRepoOptions) bool { return opts.ListOptions.Page == n })
}

func lastPage() *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: http.StatusOK}}
}

func statusResponse(code int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: code, Header: http.Header{}}}
}

func page(n int) interface{} {
	return mock.MatchedBy(func(opts *github.MilestoneListOptions) bool { return opts.Page == n })
}

func newTestClient() (*GitHubClient, *MockIssuesService) {
	issues := &MockIssuesService{}
	return NewGitHubClientWithServices(issues, testOwner), issues
}

func TestGitHubClient_FindMilestone(t *testing.T) {
	t.Run("should resolve a single match across pages", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, page(0)).
			Return([]*github.Milestone{milestone(1, "1.79.0")}, &github.Response{NextPage: 2}, nil).Once()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, page(2)).
			Return([]*github.Milestone{milestone(2, "1.80.0")}, lastPage(), nil).Once()

		m, err := client.FindMilestone(context.Background(), "1.80.0", testRepo)

		require.NoError(t, err)
		assert.Equal(t, 2, m.Number)
		assert.Equal(t, "1.80.0", m.Title)
		issues.AssertExpectations(t)
	})

	t.Run("should fail when nothing matches", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(1, "1.79.0")}, lastPage(), nil)

		m, err := client.FindMilestone(context.Background(), "1.80.0", testRepo)

		assert.Nil(t, m)
		assert.True(t, errors.Is(err, domainErrors.ErrMilestoneNotFound))
	})

	t.Run("should fail when the query is ambiguous", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(1, "1.80.0"), milestone(2, "1.81.0")}, lastPage(), nil)

		m, err := client.FindMilestone(context.Background(), "1.8", testRepo)

		assert.Nil(t, m)
		require.True(t, errors.Is(err, domainErrors.ErrAmbiguousMilestone))
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "1.80.0, 1.81.0", appErr.Context["matches"])
	})
}

func TestGitHubClient_FetchMilestoneIssues(t *testing.T) {
	t.Run("should merge issues and merged pull requests by number", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(7, "1.80.0")}, lastPage(), nil)

		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, mock.MatchedBy(func(opts *github.IssueListByRepoOptions) bool {
			return opts.Milestone == "7" && opts.State == "all" && opts.ListOptions.Page == 0
		})).Return([]*github.Issue{
			apiIssue(12, "Tracking issue for release notes of #5: foo", "open"),
			apiPull(9, "merged pull request", "relnotes"),
			unmergedPull(10, "closed without merging"),
		}, &github.Response{NextPage: 2, LastPage: 2}, nil).Once()
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(2)).Return([]*github.Issue{
			apiPull(5, "pull request view"),
			apiIssue(5, "issue view", "open", "T-lang"),
		}, lastPage(), nil).Once()

		records, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, 5, records[0].Number)
		assert.Equal(t, "issue view", records[0].Title)
		assert.Equal(t, []string{"T-lang"}, records[0].Labels)
		assert.Equal(t, "OPEN", string(records[0].State))

		assert.Equal(t, 9, records[1].Number)
		assert.Equal(t, "merged pull request", records[1].Title)
		assert.Equal(t, "https://github.com/rust-lang/rust/pull/9", records[1].URL)
		assert.True(t, records[1].IsClosed())

		assert.Equal(t, 12, records[2].Number)
		assert.Equal(t, "body of Tracking issue for release notes of #5: foo", records[2].Body)

		issues.AssertExpectations(t)
	})

	t.Run("should read every page of a large milestone", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(7, "1.80.0")}, lastPage(), nil)

		const lastPageNumber = 12
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(0)).
			Return([]*github.Issue{apiPull(1, "pull 1")}, &github.Response{NextPage: 2, LastPage: lastPageNumber}, nil).Once()
		for p := 2; p <= lastPageNumber; p++ {
			issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(p)).
				Return([]*github.Issue{apiPull(p, fmt.Sprintf("pull %d", p))}, lastPage(), nil).Once()
		}

		records, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		require.NoError(t, err)
		require.Len(t, records, lastPageNumber)
		for i, record := range records {
			assert.Equal(t, i+1, record.Number)
		}
		issues.AssertExpectations(t)
	})

	t.Run("should follow next pages when the last page is unknown", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(7, "1.80.0")}, lastPage(), nil)
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(0)).
			Return([]*github.Issue{apiPull(1, "pull 1")}, &github.Response{NextPage: 2}, nil).Once()
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(2)).
			Return([]*github.Issue{apiPull(2, "pull 2")}, &github.Response{NextPage: 3}, nil).Once()
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(3)).
			Return([]*github.Issue{apiIssue(3, "issue 3", "open")}, lastPage(), nil).Once()

		records, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, 3, records[2].Number)
		issues.AssertExpectations(t)
	})

	t.Run("should fail when a later page fails", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(7, "1.80.0")}, lastPage(), nil)
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(0)).
			Return([]*github.Issue{apiPull(1, "pull 1")}, &github.Response{NextPage: 2, LastPage: 2}, nil).Once()
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, issuePage(2)).
			Return([]*github.Issue(nil), statusResponse(http.StatusUnauthorized), errors.New("bad credentials")).Once()

		records, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		assert.Nil(t, records)
		assert.True(t, errors.Is(err, domainErrors.ErrGitHubTokenInvalid))
	})

	t.Run("should fail on an ambiguous milestone before listing", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(1, "1.80.0"), milestone(2, "1.80.0-beta")}, lastPage(), nil)

		records, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		assert.Nil(t, records)
		assert.True(t, errors.Is(err, domainErrors.ErrAmbiguousMilestone))
		issues.AssertNotCalled(t, "ListByRepo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a record with an unknown state", func(t *testing.T) {
		client, issues := newTestClient()
		issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Milestone{milestone(7, "1.80.0")}, lastPage(), nil)
		issues.On("ListByRepo", mock.Anything, testOwner, testRepo, mock.Anything).
			Return([]*github.Issue{apiIssue(5, "weird", "locked")}, lastPage(), nil)

		_, err := client.FetchMilestoneIssues(context.Background(), "1.80.0", testRepo)

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidIssueRecord))
	})
}

func TestGitHubClient_ErrorMapping(t *testing.T) {
	rateLimited := statusResponse(http.StatusForbidden)
	rateLimited.Rate = github.Rate{Limit: 5000, Remaining: 0}

	tests := []struct {
		name string
		resp *github.Response
		want *domainErrors.AppError
	}{
		{"unauthorized", statusResponse(http.StatusUnauthorized), domainErrors.ErrGitHubTokenInvalid},
		{"forbidden", statusResponse(http.StatusForbidden), domainErrors.ErrGitHubInsufficientPerms},
		{"rate limit by quota", rateLimited, domainErrors.ErrGitHubRateLimit},
		{"too many requests", statusResponse(http.StatusTooManyRequests), domainErrors.ErrGitHubRateLimit},
		{"not found", statusResponse(http.StatusNotFound), domainErrors.ErrRepositoryNotFound},
		{"server error", statusResponse(http.StatusBadGateway), domainErrors.ErrFetchIssues},
		{"no response", nil, domainErrors.ErrFetchIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, issues := newTestClient()
			var resp interface{}
			if tt.resp != nil {
				resp = tt.resp
			}
			issues.On("ListMilestones", mock.Anything, testOwner, testRepo, mock.Anything).
				Return([]*github.Milestone(nil), resp, errors.New("api failure"))

			_, err := client.FindMilestone(context.Background(), "1.80.0", testRepo)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestNewGitHubClient(t *testing.T) {
	client := NewGitHubClient(testOwner, "token")

	assert.Equal(t, testOwner, client.owner)
	assert.NotNil(t, client.issuesService)
	assert.Equal(t, "rust-lang/cargo", client.repoPath("cargo"))
}
