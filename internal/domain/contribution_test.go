package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountByKind(t *testing.T) {
	contributions := []Contribution{
		{Kind: KindPullRequest, Title: "pr one"},
		{Kind: KindCommit, Title: "5 commits to api"},
		{Kind: KindPullRequest, Title: "pr two"},
		{Kind: KindIssue, Title: "issue one"},
		{Kind: KindCommit, Title: "2 commits to cli"},
		{Kind: KindCommit, Title: "1 commits to web"},
	}

	counts := CountByKind(contributions)

	assert.Equal(t, 2, counts[KindPullRequest])
	assert.Equal(t, 1, counts[KindIssue])
	assert.Equal(t, 3, counts[KindCommit])
}

func TestCountByKind_Empty(t *testing.T) {
	counts := CountByKind(nil)

	assert.Equal(t, 0, counts[KindPullRequest])
	assert.Equal(t, 0, counts[KindIssue])
	assert.Equal(t, 0, counts[KindCommit])
}
