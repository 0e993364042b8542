package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_AppendPullRequests(t *testing.T) {
	aggregate := &Aggregate{}

	aggregate.AppendPullRequests([]PullRequestContribution{
		{Title: "first", Repository: "api"},
		{Title: "second", Repository: "api"},
	})
	aggregate.AppendPullRequests(nil)
	aggregate.AppendPullRequests([]PullRequestContribution{
		{Title: "third", Repository: "web"},
	})

	require.Len(t, aggregate.PullRequests, 3)
	assert.Equal(t, "first", aggregate.PullRequests[0].Title)
	assert.Equal(t, "second", aggregate.PullRequests[1].Title)
	assert.Equal(t, "third", aggregate.PullRequests[2].Title)
}

func TestAggregate_SetIssuesOnce(t *testing.T) {
	aggregate := &Aggregate{}
	first := []IssueContribution{{Title: "kept"}}

	require.NoError(t, aggregate.SetIssues(first))

	err := aggregate.SetIssues([]IssueContribution{{Title: "rejected"}})
	assert.ErrorIs(t, err, ErrAlreadySet)
	assert.Equal(t, first, aggregate.Issues())
}

func TestAggregate_SetIssuesOnce_EmptyFirstValueStillCounts(t *testing.T) {
	aggregate := &Aggregate{}

	// A nil first assignment is still an assignment.
	require.NoError(t, aggregate.SetIssues(nil))

	err := aggregate.SetIssues([]IssueContribution{{Title: "rejected"}})
	assert.ErrorIs(t, err, ErrAlreadySet)
	assert.Empty(t, aggregate.Issues())
}

func TestAggregate_SetCommitsByRepositoryOnce(t *testing.T) {
	aggregate := &Aggregate{}
	first := []RepositoryCommits{{Repository: "api"}}

	require.NoError(t, aggregate.SetCommitsByRepository(first))

	err := aggregate.SetCommitsByRepository([]RepositoryCommits{{Repository: "rejected"}})
	assert.ErrorIs(t, err, ErrAlreadySet)
	assert.Equal(t, first, aggregate.CommitsByRepository())
}
