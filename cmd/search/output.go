package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/favorites"
	"github.com/mlahtinen/bookfind/internal/pipeline"
)

// jsonResult is the envelope for --json output.
type jsonResult struct {
	Term       string                `json:"term"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	TotalItems int                   `json:"total_items"`
	Books      []enrich.EnrichedBook `json:"books"`
}

func renderJSON(w io.Writer, term string, page pipeline.Page) error {
	result := jsonResult{
		Term:       term,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
		Books:      page.Books,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func renderText(w io.Writer, term string, page pipeline.Page, favs *favorites.List) {
	if page.TotalItems == 0 {
		fmt.Fprintf(w, "No results for %q\n", term)
		return
	}

	fmt.Fprintf(w, "Results for %q (page %d/%d, %d total)\n\n",
		term, page.Number, page.TotalPages, page.TotalItems)

	for _, book := range page.Books {
		marker := " "
		if favs != nil && favs.IsFavorited(book.Key) {
			marker = "*"
		}

		title := book.Title
		if book.FirstPublishYear > 0 {
			title = fmt.Sprintf("%s (%d)", title, book.FirstPublishYear)
		}
		fmt.Fprintf(w, "%s %s\n", marker, title)
		fmt.Fprintf(w, "  by %s\n", enrich.FormatAuthors(book.AuthorNames))
		fmt.Fprintf(w, "  %s\n", bookSummaryLine(book))
		fmt.Fprintln(w)
	}

	if page.HasNext() {
		fmt.Fprintf(w, "Use --page %d for more results\n", page.Number+1)
	}
}

// bookSummaryLine joins the enriched fields into a single detail line.
func bookSummaryLine(book enrich.EnrichedBook) string {
	var parts []string

	if book.RatingsAverage > 0 {
		parts = append(parts, fmt.Sprintf("%.1f/5 (%d ratings)", book.RatingsAverage, book.RatingsCount))
	}
	if book.PrimaryGenre != "" {
		parts = append(parts, book.PrimaryGenre)
	}
	if book.ReadingLevel != "" {
		parts = append(parts, string(book.ReadingLevel))
	}
	if readTime := enrich.FormatReadTime(book.PageCountMedian); readTime != "" {
		parts = append(parts, readTime)
	}
	if book.AvailabilityStatus != "" {
		parts = append(parts, string(book.AvailabilityStatus))
	}

	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " | ")
}
