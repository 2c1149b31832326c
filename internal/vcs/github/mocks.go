package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) ListMilestones(ctx context.Context, owner, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(1) == nil {
		return args.Get(0).([]*github.Milestone), nil, args.Error(2)
	}
	return args.Get(0).([]*github.Milestone), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(1) == nil {
		return args.Get(0).([]*github.Issue), nil, args.Error(2)
	}
	return args.Get(0).([]*github.Issue), args.Get(1).(*github.Response), args.Error(2)
}
