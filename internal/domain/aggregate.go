package domain

import "errors"

// ErrAlreadySet reports a second assignment to one of the Aggregate's
// set-once collections.
var ErrAlreadySet = errors.New("aggregate collection already set")

// Aggregate accumulates the pages of one contributions fetch into a complete
// snapshot. Pull requests grow batch by batch across the pagination loop;
// the issue and commit collections come from the first page only and are
// guarded against reassignment, since the canonical query does not paginate
// them.
type Aggregate struct {
	// TotalPullRequests is the server-reported expected pull-request count
	// from the first page. Observational only; never enforced.
	TotalPullRequests int

	PullRequests []PullRequestContribution

	issues    []IssueContribution
	issuesSet bool

	commitsByRepository    []RepositoryCommits
	commitsByRepositorySet bool
}

// AppendPullRequests adds one page's pull-request batch to the running list.
func (a *Aggregate) AppendPullRequests(batch []PullRequestContribution) {
	a.PullRequests = append(a.PullRequests, batch...)
}

// SetIssues records the issue list. It may be called exactly once;
// later calls fail with ErrAlreadySet and leave the first value intact.
func (a *Aggregate) SetIssues(issues []IssueContribution) error {
	if a.issuesSet {
		return ErrAlreadySet
	}
	a.issues = issues
	a.issuesSet = true
	return nil
}

// SetCommitsByRepository records the per-repository commit list. It may be
// called exactly once; later calls fail with ErrAlreadySet and leave the
// first value intact.
func (a *Aggregate) SetCommitsByRepository(batches []RepositoryCommits) error {
	if a.commitsByRepositorySet {
		return ErrAlreadySet
	}
	a.commitsByRepository = batches
	a.commitsByRepositorySet = true
	return nil
}

// Issues returns the first page's issue list.
func (a *Aggregate) Issues() []IssueContribution {
	return a.issues
}

// CommitsByRepository returns the first page's per-repository commit list.
func (a *Aggregate) CommitsByRepository() []RepositoryCommits {
	return a.commitsByRepository
}
