// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-contrib <username> <organization>",
	Short: "Exports a user's contributions within a GitHub organization as markdown.",
	Long: `github-contrib collects every pull request, issue and commit a user
contributed to one GitHub organization and writes them, newest first, to a
markdown report. The GitHub credential is taken from the GITHUB_TOKEN
environment variable.`,
	Args: cobra.ExactArgs(2),
	Run:  runReport,
}

// Execute runs the root command. It is called by main.main() and only needs
// to happen once.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
