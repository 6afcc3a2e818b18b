package enrich

import (
	"fmt"
	"strings"
)

// FormatAuthors renders an author list for display.
// Long lists collapse to the first two names plus a count.
func FormatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "Unknown Author"
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " & " + authors[1]
	case 3:
		return fmt.Sprintf("%s & %s", strings.Join(authors[:2], ", "), authors[2])
	default:
		return fmt.Sprintf("%s & %d more", strings.Join(authors[:2], ", "), len(authors)-2)
	}
}

// FormatReadTime renders a page count as an hours-and-minutes reading
// estimate, using the same words-per-page model as enrichment.
// Returns "" when the page count is absent.
func FormatReadTime(pages int) string {
	if pages <= 0 {
		return ""
	}

	totalMinutes := (pages*wordsPerPage + wordsPerMinute - 1) / wordsPerMinute
	hours := totalMinutes / minutesPerHour
	minutes := totalMinutes % minutesPerHour

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
