package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-contrib/internal/config"
	"github.com/naka-gawa/github-contrib/internal/domain"
	"github.com/naka-gawa/github-contrib/internal/gateway"
	"github.com/naka-gawa/github-contrib/internal/report"
	"github.com/naka-gawa/github-contrib/internal/usecase"
)

// runReport wires the pipeline together: configuration, gateway, aggregation
// and the markdown export.
func runReport(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	username, organization := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Progress lines go to stderr so stdout stays clean for the summary.
	logger := log.New(os.Stderr, "", log.LstdFlags)

	fmt.Printf("Fetching contributions for %s in %s...\n", username, organization)

	githubGateway, err := gateway.NewGitHubGateway(gateway.Config{
		Token:    cfg.GitHubToken,
		Endpoint: cfg.GraphQLEndpoint,
		MaxPages: cfg.MaxPages,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
		os.Exit(1)
	}

	aggregator := usecase.NewAggregator(githubGateway, logger)
	contributions, err := aggregator.Aggregate(ctx, username, organization)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to aggregate contributions: %v\n", err)
		os.Exit(1)
	}

	path, err := report.Export(cfg.OutputFile, username, organization, contributions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to export report: %v\n", err)
		os.Exit(1)
	}

	printSummaryTable(contributions)
	fmt.Printf("Successfully exported contributions to %s\n", path)
}

// printSummaryTable prints the per-kind record counts to stdout.
func printSummaryTable(contributions []domain.Contribution) {
	counts := domain.CountByKind(contributions)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Type", "Count"})
	table.Append([]string{"Pull Requests", fmt.Sprintf("%d", counts[domain.KindPullRequest])})
	table.Append([]string{"Issues", fmt.Sprintf("%d", counts[domain.KindIssue])})
	table.Append([]string{"Commits", fmt.Sprintf("%d", counts[domain.KindCommit])})
	table.Render()
}
