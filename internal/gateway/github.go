// Package gateway provides a gateway to the GitHub GraphQL API,
// abstracting away organization lookups and the paginated
// contributions query.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-contrib/internal/domain"
	apperrors "github.com/naka-gawa/github-contrib/internal/errors"
)

const (
	defaultGraphQLEndpoint = "https://api.github.com/graphql"
	defaultMaxPages        = 100

	// acceptHeader requests the GraphQL schema flavor the queries below
	// were written against.
	acceptHeader = "application/vnd.github.v4.idl"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchOrganizationID(ctx context.Context, organization string) (domain.OrganizationID, error)
	FetchContributions(ctx context.Context, username string, orgID domain.OrganizationID) (*domain.Aggregate, error)
}

// Config carries the gateway's construction-time settings. The credential is
// injected here exactly once; the gateway never reads the environment itself.
type Config struct {
	Token    string
	Endpoint string // GraphQL endpoint; empty means the public GitHub API
	MaxPages int    // pagination budget; non-positive means the default
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	httpClient *http.Client
	endpoint   string
	maxPages   int
	logger     *log.Logger
}

// organizationQuery resolves an organization login to its opaque node ID.
const organizationQuery = `
query($organization: String!) {
  organization(login: $organization) {
    id
  }
}`

// contributionsQuery walks the user's contributions collection scoped to one
// organization. Only pullRequestContributions exposes pageInfo and
// paginates; the issue and commit collections are captured from the first
// page.
const contributionsQuery = `
query($username: String!, $organizationID: ID!, $prCursor: String) {
  user(login: $username) {
    contributionsCollection(organizationID: $organizationID) {
      totalPullRequestContributions
      pullRequestContributions(first: 100, after: $prCursor, orderBy: {direction: DESC}) {
        pageInfo {
          hasNextPage
          endCursor
        }
        totalCount
        nodes {
          pullRequest {
            title
            url
            state
            repository {
              name
            }
            createdAt
            merged
            closed
          }
        }
      }
      issueContributions(first: 100) {
        nodes {
          issue {
            title
            url
            state
            repository {
              name
            }
            createdAt
          }
        }
      }
      commitContributionsByRepository {
        repository {
          name
        }
        contributions(first: 100) {
          nodes {
            commitCount
            occurredAt
            resourcePath
            url
          }
        }
      }
    }
  }
}`

// graphQLRequest is the wire shape of one GraphQL call.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// graphQLError is one entry of the response envelope's error list.
type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// organizationResponse models the resolver's {data, errors} envelope. The
// organization object is null when no organization matches the login; the
// remote pairs that null with a NOT_FOUND entry in the errors list.
type organizationResponse struct {
	Data *struct {
		Organization *struct {
			ID string `json:"id"`
		} `json:"organization"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type pullRequestNode struct {
	PullRequest struct {
		Title      string `json:"title"`
		URL        string `json:"url"`
		State      string `json:"state"`
		Repository struct {
			Name string `json:"name"`
		} `json:"repository"`
		CreatedAt string `json:"createdAt"`
		Merged    bool   `json:"merged"`
		Closed    bool   `json:"closed"`
	} `json:"pullRequest"`
}

type issueNode struct {
	Issue struct {
		Title      string `json:"title"`
		URL        string `json:"url"`
		State      string `json:"state"`
		Repository struct {
			Name string `json:"name"`
		} `json:"repository"`
		CreatedAt string `json:"createdAt"`
	} `json:"issue"`
}

type commitRepositoryNode struct {
	Repository struct {
		Name string `json:"name"`
	} `json:"repository"`
	Contributions struct {
		Nodes []struct {
			CommitCount  int    `json:"commitCount"`
			OccurredAt   string `json:"occurredAt"`
			ResourcePath string `json:"resourcePath"`
			URL          string `json:"url"`
		} `json:"nodes"`
	} `json:"contributions"`
}

// contributionsCollection is the slice of the envelope the fetch loop
// consumes on every page.
type contributionsCollection struct {
	TotalPullRequestContributions int `json:"totalPullRequestContributions"`
	PullRequestContributions      struct {
		PageInfo   pageInfo          `json:"pageInfo"`
		TotalCount int               `json:"totalCount"`
		Nodes      []pullRequestNode `json:"nodes"`
	} `json:"pullRequestContributions"`
	IssueContributions struct {
		Nodes []issueNode `json:"nodes"`
	} `json:"issueContributions"`
	CommitContributionsByRepository []commitRepositoryNode `json:"commitContributionsByRepository"`
}

// contributionsResponse models the {data, errors} envelope of one page. The
// data, user and collection levels are pointers so a body missing one of
// them decodes as nil rather than an empty collection.
type contributionsResponse struct {
	Data *struct {
		User *struct {
			ContributionsCollection *contributionsCollection `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(cfg Config, logger *log.Logger) (Fetcher, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultGraphQLEndpoint
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})

	return &GitHubGateway{
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: ts},
		},
		endpoint: cfg.Endpoint,
		maxPages: cfg.MaxPages,
		logger:   logger,
	}, nil
}

// FetchOrganizationID turns an organization login into the opaque ID the
// contributions query requires. Exactly one outbound request. The remote
// reports a nonexistent organization as a 200 response with a null
// organization object, so the null object alone decides not-found; the
// errors list is never consulted here.
func (g *GitHubGateway) FetchOrganizationID(ctx context.Context, organization string) (domain.OrganizationID, error) {
	if organization == "" {
		return "", apperrors.NewBadRequestError("organization name must not be empty")
	}

	g.logger.Println("[1/2] Resolving organization ID...")
	variables := map[string]interface{}{
		"organization": organization,
	}

	var envelope organizationResponse
	if err := g.postQuery(ctx, "organization query", organizationQuery, variables, &envelope); err != nil {
		return "", err
	}
	if envelope.Data == nil || envelope.Data.Organization == nil || envelope.Data.Organization.ID == "" {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("organization %q", organization))
	}

	g.logger.Printf("Resolved organization %s\n", organization)
	return domain.OrganizationID(envelope.Data.Organization.ID), nil
}

// FetchContributions drives the cursor-paginated contributions query and
// accumulates every page into one Aggregate. Requests are strictly
// sequential; the first page's issue and commit collections are recorded
// set-once and never touched again.
func (g *GitHubGateway) FetchContributions(ctx context.Context, username string, orgID domain.OrganizationID) (*domain.Aggregate, error) {
	if username == "" {
		return nil, apperrors.NewBadRequestError("username must not be empty")
	}

	g.logger.Println("[2/2] Fetching contribution data using GraphQL API...")
	variables := map[string]interface{}{
		"username":       username,
		"organizationID": string(orgID),
		"prCursor":       nil,
	}

	aggregate := &domain.Aggregate{}
	fetched := 0

	for page := 1; ; page++ {
		if page > g.maxPages {
			return nil, apperrors.NewLimitExceededError(fmt.Sprintf("contributions query exceeded %d pages", g.maxPages))
		}

		collection, err := g.postContributions(ctx, variables)
		if err != nil {
			return nil, err
		}

		if page == 1 {
			aggregate.TotalPullRequests = collection.TotalPullRequestContributions
			g.logger.Printf("Expected total PRs: %d\n", aggregate.TotalPullRequests)
			if err := aggregate.SetIssues(mapIssues(collection.IssueContributions.Nodes)); err != nil {
				return nil, fmt.Errorf("failed to record issue contributions: %w", err)
			}
			if err := aggregate.SetCommitsByRepository(mapCommitRepositories(collection.CommitContributionsByRepository)); err != nil {
				return nil, fmt.Errorf("failed to record commit contributions: %w", err)
			}
		}

		batch := mapPullRequests(collection.PullRequestContributions.Nodes)
		aggregate.AppendPullRequests(batch)
		fetched += len(batch)
		g.logger.Printf("Fetched %d PRs so far...\n", fetched)

		info := collection.PullRequestContributions.PageInfo
		if !info.HasNextPage {
			break
		}
		if info.EndCursor == nil {
			return nil, apperrors.NewParseError("page reported hasNextPage with a null endCursor", nil)
		}
		variables["prCursor"] = *info.EndCursor
		g.logger.Println("  Fetching next page of pull requests...")
	}

	g.logger.Printf("Total PRs fetched: %d\n", fetched)
	return aggregate, nil
}

// postContributions issues one contributions query and classifies its
// envelope: a non-empty errors list is an API error, and a body that lacks
// the data, user or contributions collection objects is a parse error. The
// errors list is checked first so a failure the remote reported is never
// misread as a shape problem.
func (g *GitHubGateway) postContributions(ctx context.Context, variables map[string]interface{}) (*contributionsCollection, error) {
	var envelope contributionsResponse
	if err := g.postQuery(ctx, "contributions query", contributionsQuery, variables, &envelope); err != nil {
		return nil, err
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, apperrors.NewAPIError(fmt.Sprintf("GitHub API error: %s", strings.Join(messages, "; ")))
	}
	if envelope.Data == nil || envelope.Data.User == nil || envelope.Data.User.ContributionsCollection == nil {
		return nil, apperrors.NewParseError("contributions response missing user data", nil)
	}

	return envelope.Data.User.ContributionsCollection, nil
}

// postQuery sends one GraphQL call and decodes the response body into out.
// Failed requests and non-200 statuses are transport errors; bodies that do
// not decode are parse errors. Envelope-level classification is left to the
// callers.
func (g *GitHubGateway) postQuery(ctx context.Context, operation, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", acceptHeader)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("%s request failed", operation), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewTransportError(fmt.Sprintf("%s returned status %d", operation, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewParseError(fmt.Sprintf("failed to decode %s response", operation), err)
	}
	return nil
}

func mapPullRequests(nodes []pullRequestNode) []domain.PullRequestContribution {
	batch := make([]domain.PullRequestContribution, 0, len(nodes))
	for _, node := range nodes {
		pr := node.PullRequest
		batch = append(batch, domain.PullRequestContribution{
			Title:      pr.Title,
			URL:        pr.URL,
			State:      pr.State,
			Repository: pr.Repository.Name,
			CreatedAt:  pr.CreatedAt,
		})
	}
	return batch
}

func mapIssues(nodes []issueNode) []domain.IssueContribution {
	issues := make([]domain.IssueContribution, 0, len(nodes))
	for _, node := range nodes {
		issue := node.Issue
		issues = append(issues, domain.IssueContribution{
			Title:      issue.Title,
			URL:        issue.URL,
			State:      issue.State,
			Repository: issue.Repository.Name,
			CreatedAt:  issue.CreatedAt,
		})
	}
	return issues
}

func mapCommitRepositories(nodes []commitRepositoryNode) []domain.RepositoryCommits {
	batches := make([]domain.RepositoryCommits, 0, len(nodes))
	for _, node := range nodes {
		contributions := make([]domain.CommitContribution, 0, len(node.Contributions.Nodes))
		for _, occurrence := range node.Contributions.Nodes {
			contributions = append(contributions, domain.CommitContribution{
				CommitCount: occurrence.CommitCount,
				OccurredAt:  occurrence.OccurredAt,
				URL:         occurrence.URL,
			})
		}
		batches = append(batches, domain.RepositoryCommits{
			Repository:    node.Repository.Name,
			Contributions: contributions,
		})
	}
	return batches
}
