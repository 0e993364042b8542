package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-contrib/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// sampleContributions is one record of each kind, already in the
// date-descending order the normalizer produces.
func sampleContributions() []domain.Contribution {
	return []domain.Contribution{
		{Kind: domain.KindPullRequest, Title: "Add caching layer", Repository: "api", Status: "MERGED", URL: "https://github.com/acme/api/pull/42", Date: day(2024, 3, 1)},
		{Kind: domain.KindIssue, Title: "Crash on startup", Repository: "cli", Status: "CLOSED", URL: "https://github.com/acme/cli/issues/3", Date: day(2024, 2, 18)},
		{Kind: domain.KindCommit, Title: "4 commits to api", Repository: "api", Status: domain.StatusCommitted, URL: "https://github.com/acme/api/commits?author=octocat", Date: day(2024, 2, 15)},
	}
}

func TestRender_FullDocument(t *testing.T) {
	expected := `# GitHub Contributions for octocat in acme

## Summary
- Total Pull Requests: 1
- Total Issues: 1
- Total Commits: 1
- Active Days: 3
- Mean Contributions per Active Day: 1.0
- Peak Day: 2024-02-15 (1 contributions)

## Detailed Contributions

### Pull Requests

- [Add caching layer](https://github.com/acme/api/pull/42) - MERGED (2024-03-01)

### Issues

- [Crash on startup](https://github.com/acme/cli/issues/3) - CLOSED (2024-02-18)

### Commits

- [4 commits to api](https://github.com/acme/api/commits?author=octocat) - 2024-02-15

`

	var sb strings.Builder
	err := Render(&sb, "octocat", "acme", sampleContributions())

	require.NoError(t, err)
	assert.Equal(t, expected, sb.String())
}

func TestRender_OmitsEmptySections(t *testing.T) {
	contributions := []domain.Contribution{
		{Kind: domain.KindPullRequest, Title: "Only PR", Repository: "api", Status: "OPEN", URL: "u", Date: day(2024, 3, 1)},
	}

	var sb strings.Builder
	err := Render(&sb, "octocat", "acme", contributions)

	require.NoError(t, err)
	output := sb.String()
	assert.Contains(t, output, "### Pull Requests")
	assert.NotContains(t, output, "### Issues")
	assert.NotContains(t, output, "### Commits")
	assert.Contains(t, output, "- Total Issues: 0")
	assert.Contains(t, output, "- Total Commits: 0")
}

func TestRender_NoContributions(t *testing.T) {
	var sb strings.Builder
	err := Render(&sb, "octocat", "acme", nil)

	require.NoError(t, err)
	output := sb.String()
	assert.Contains(t, output, "- Total Pull Requests: 0")
	assert.Contains(t, output, "## Detailed Contributions")
	// The activity figures are meaningless without records.
	assert.NotContains(t, output, "Active Days")
	assert.NotContains(t, output, "Peak Day")
	assert.NotContains(t, output, "###")
}

func TestRender_PreservesRecordOrder(t *testing.T) {
	contributions := []domain.Contribution{
		{Kind: domain.KindPullRequest, Title: "newer PR", Repository: "api", Status: "OPEN", URL: "u1", Date: day(2024, 3, 2)},
		{Kind: domain.KindPullRequest, Title: "older PR", Repository: "api", Status: "MERGED", URL: "u2", Date: day(2024, 3, 1)},
	}

	var sb strings.Builder
	err := Render(&sb, "octocat", "acme", contributions)

	require.NoError(t, err)
	output := sb.String()
	assert.Less(t, strings.Index(output, "newer PR"), strings.Index(output, "older PR"))
}

func TestRender_PeakDayPrefersEarliest(t *testing.T) {
	// Two days tie at two records each; the earlier one wins.
	contributions := []domain.Contribution{
		{Kind: domain.KindPullRequest, Title: "a", Repository: "api", Status: "OPEN", URL: "u", Date: day(2024, 1, 5)},
		{Kind: domain.KindPullRequest, Title: "b", Repository: "api", Status: "OPEN", URL: "u", Date: day(2024, 1, 5)},
		{Kind: domain.KindIssue, Title: "c", Repository: "cli", Status: "OPEN", URL: "u", Date: day(2024, 1, 1)},
		{Kind: domain.KindIssue, Title: "d", Repository: "cli", Status: "OPEN", URL: "u", Date: day(2024, 1, 1)},
	}

	var sb strings.Builder
	err := Render(&sb, "octocat", "acme", contributions)

	require.NoError(t, err)
	output := sb.String()
	assert.Contains(t, output, "- Active Days: 2\n")
	assert.Contains(t, output, "- Mean Contributions per Active Day: 2.0\n")
	assert.Contains(t, output, "- Peak Day: 2024-01-01 (2 contributions)\n")
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contributions.md")

	returned, err := Export(path, "octocat", "acme", sampleContributions())
	require.NoError(t, err)
	assert.Equal(t, path, returned)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "# GitHub Contributions for octocat in acme")

	// A second export with fewer records must fully replace the file.
	_, err = Export(path, "octocat", "acme", nil)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, len(second), len(first))
	assert.NotContains(t, string(second), "Add caching layer")
}
