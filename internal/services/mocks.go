package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/relnotes/internal/models"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchMilestoneIssues(ctx context.Context, milestoneQuery, repoName string) ([]models.IssueRecord, error) {
	args := m.Called(ctx, milestoneQuery, repoName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IssueRecord), args.Error(1)
}
