// Package report renders normalized contributions as a markdown document.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-contrib/internal/domain"
)

const dateLayout = "2006-01-02"

// activitySummary carries the per-day activity figures of the Summary block.
type activitySummary struct {
	ActiveDays int
	MeanPerDay float64
	PeakDay    time.Time
	PeakCount  int
}

// Render writes the markdown report to w. Sections appear only when they
// have records, and records keep the order they arrive in.
func Render(w io.Writer, username, organization string, contributions []domain.Contribution) error {
	buf := bufio.NewWriter(w)
	counts := domain.CountByKind(contributions)

	fmt.Fprintf(buf, "# GitHub Contributions for %s in %s\n\n", username, organization)

	buf.WriteString("## Summary\n")
	fmt.Fprintf(buf, "- Total Pull Requests: %d\n", counts[domain.KindPullRequest])
	fmt.Fprintf(buf, "- Total Issues: %d\n", counts[domain.KindIssue])
	fmt.Fprintf(buf, "- Total Commits: %d\n", counts[domain.KindCommit])
	if len(contributions) > 0 {
		summary, err := summarizeActivity(contributions)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "- Active Days: %d\n", summary.ActiveDays)
		fmt.Fprintf(buf, "- Mean Contributions per Active Day: %.1f\n", summary.MeanPerDay)
		fmt.Fprintf(buf, "- Peak Day: %s (%d contributions)\n", summary.PeakDay.Format(dateLayout), summary.PeakCount)
	}
	buf.WriteString("\n")

	buf.WriteString("## Detailed Contributions\n\n")

	writeSection(buf, "Pull Requests", filterKind(contributions, domain.KindPullRequest), true)
	writeSection(buf, "Issues", filterKind(contributions, domain.KindIssue), true)
	writeSection(buf, "Commits", filterKind(contributions, domain.KindCommit), false)

	return buf.Flush()
}

// Export renders the report into the file at path, truncating any previous
// content, and returns the path on success.
func Export(path, username, organization string, contributions []domain.Contribution) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Render(file, username, organization, contributions); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}

// summarizeActivity groups records by day. Peak ties resolve to the
// earliest day.
func summarizeActivity(contributions []domain.Contribution) (activitySummary, error) {
	perDay := make(map[time.Time]int)
	for _, contribution := range contributions {
		perDay[contribution.Date]++
	}

	days := make([]time.Time, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	counts := make([]float64, 0, len(days))
	for _, d := range days {
		counts = append(counts, float64(perDay[d]))
	}

	mean, err := stats.Mean(counts)
	if err != nil {
		return activitySummary{}, fmt.Errorf("failed to compute mean activity: %w", err)
	}
	peak, err := stats.Max(counts)
	if err != nil {
		return activitySummary{}, fmt.Errorf("failed to compute peak activity: %w", err)
	}

	summary := activitySummary{
		ActiveDays: len(days),
		MeanPerDay: mean,
		PeakCount:  int(peak),
	}
	for _, d := range days {
		if perDay[d] == summary.PeakCount {
			summary.PeakDay = d
			break
		}
	}
	return summary, nil
}

func writeSection(buf *bufio.Writer, heading string, records []domain.Contribution, withStatus bool) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(buf, "### %s\n\n", heading)
	for _, record := range records {
		if withStatus {
			fmt.Fprintf(buf, "- [%s](%s) - %s (%s)\n", record.Title, record.URL, record.Status, record.Date.Format(dateLayout))
		} else {
			fmt.Fprintf(buf, "- [%s](%s) - %s\n", record.Title, record.URL, record.Date.Format(dateLayout))
		}
	}
	buf.WriteString("\n")
}

func filterKind(contributions []domain.Contribution, kind domain.Kind) []domain.Contribution {
	filtered := make([]domain.Contribution, 0, len(contributions))
	for _, contribution := range contributions {
		if contribution.Kind == kind {
			filtered = append(filtered, contribution)
		}
	}
	return filtered
}
