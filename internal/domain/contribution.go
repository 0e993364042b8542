// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// OrganizationID is the opaque identifier GitHub assigns to an organization.
// It is resolved once per run and required by the contributions query.
type OrganizationID string

// Kind discriminates the three contribution types that share the
// normalized Contribution schema.
type Kind string

const (
	KindPullRequest Kind = "pull_request"
	KindIssue       Kind = "issue"
	KindCommit      Kind = "commit"
)

// StatusCommitted is the fixed status assigned to normalized commit records;
// commits have no lifecycle state of their own.
const StatusCommitted = "Committed"

// Contribution is one normalized unit of activity. It is the core domain
// entity of this application: pull requests, issues, and commit batches all
// flatten into this shape so they can be sorted and rendered uniformly.
type Contribution struct {
	Kind       Kind
	Title      string
	Repository string
	Status     string
	URL        string
	Date       time.Time // day precision, UTC
}

// PullRequestContribution is one pull request as reported by the
// contributions query. CreatedAt keeps the API's timestamp string verbatim;
// parsing is the normalizer's job.
type PullRequestContribution struct {
	Title      string
	URL        string
	State      string
	Repository string
	CreatedAt  string
}

// IssueContribution is one issue as reported by the contributions query.
type IssueContribution struct {
	Title      string
	URL        string
	State      string
	Repository string
	CreatedAt  string
}

// RepositoryCommits groups a user's commit activity within one repository.
// Each occurrence covers one day's worth of commits to that repository.
type RepositoryCommits struct {
	Repository    string
	Contributions []CommitContribution
}

// CommitContribution is one date-stamped commit-count occurrence.
type CommitContribution struct {
	CommitCount int
	OccurredAt  string
	URL         string
}

// CountByKind tallies a normalized sequence per contribution kind.
// Commit records count as one each, regardless of their commit count.
func CountByKind(contributions []Contribution) map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, c := range contributions {
		counts[c.Kind]++
	}
	return counts
}
