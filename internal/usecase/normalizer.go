package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/naka-gawa/github-contrib/internal/domain"
	apperrors "github.com/naka-gawa/github-contrib/internal/errors"
)

// timestampLayout is the UTC shape GitHub uses for createdAt and occurredAt.
const timestampLayout = "2006-01-02T15:04:05Z"

// Normalize flattens an aggregate's three contribution shapes into one
// uniform record list sorted by date, newest first. Records sharing a date
// keep their relative order: pull requests, then issues, then commits, each
// in arrival order.
func Normalize(aggregate *domain.Aggregate) ([]domain.Contribution, error) {
	contributions := make([]domain.Contribution, 0, len(aggregate.PullRequests)+len(aggregate.Issues()))

	for _, pr := range aggregate.PullRequests {
		date, err := parseDay(pr.CreatedAt)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, domain.Contribution{
			Kind:       domain.KindPullRequest,
			Title:      pr.Title,
			Repository: pr.Repository,
			Status:     pr.State,
			URL:        pr.URL,
			Date:       date,
		})
	}

	for _, issue := range aggregate.Issues() {
		date, err := parseDay(issue.CreatedAt)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, domain.Contribution{
			Kind:       domain.KindIssue,
			Title:      issue.Title,
			Repository: issue.Repository,
			Status:     issue.State,
			URL:        issue.URL,
			Date:       date,
		})
	}

	for _, repo := range aggregate.CommitsByRepository() {
		for _, commit := range repo.Contributions {
			date, err := parseDay(commit.OccurredAt)
			if err != nil {
				return nil, err
			}
			contributions = append(contributions, domain.Contribution{
				Kind:       domain.KindCommit,
				Title:      fmt.Sprintf("%d commits to %s", commit.CommitCount, repo.Repository),
				Repository: repo.Repository,
				Status:     domain.StatusCommitted,
				URL:        commit.URL,
				Date:       date,
			})
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Date.After(contributions[j].Date)
	})
	return contributions, nil
}

// parseDay parses a GitHub timestamp and truncates it to day precision in UTC.
func parseDay(value string) (time.Time, error) {
	ts, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewParseError(fmt.Sprintf("malformed timestamp %q", value), err)
	}
	return ts.UTC().Truncate(24 * time.Hour), nil
}
