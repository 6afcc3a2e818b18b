// Package show prints detail views for single OpenLibrary works and authors.
package show

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mlahtinen/bookfind/internal/openlibrary"
)

// Options configures a detail lookup.
type Options struct {
	ID   string
	JSON bool

	Output io.Writer
	Client *openlibrary.Client
}

func (o *Options) defaults() {
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Client == nil {
		o.Client = openlibrary.NewClient()
	}
}

// RunWork fetches and prints a work by its OpenLibrary ID (e.g. OL45883W).
func RunWork(opts Options) error {
	opts.defaults()

	work, err := opts.Client.Work(context.Background(), normalizeID(opts.ID, "/works/"))
	if err != nil {
		return err
	}

	if opts.JSON {
		return encodeJSON(opts.Output, work)
	}

	fmt.Fprintf(opts.Output, "%s\n", work.Title)
	fmt.Fprintf(opts.Output, "Key: %s\n", work.Key)
	if desc := work.DescriptionText(); desc != "" {
		fmt.Fprintf(opts.Output, "\n%s\n", desc)
	}
	if len(work.Subjects) > 0 {
		fmt.Fprintf(opts.Output, "\nSubjects: %s\n", strings.Join(work.Subjects, ", "))
	}
	return nil
}

// RunAuthor fetches and prints an author by ID (e.g. OL23919A).
func RunAuthor(opts Options) error {
	opts.defaults()

	author, err := opts.Client.Author(context.Background(), normalizeID(opts.ID, "/authors/"))
	if err != nil {
		return err
	}

	if opts.JSON {
		return encodeJSON(opts.Output, author)
	}

	fmt.Fprintf(opts.Output, "%s\n", author.Name)
	fmt.Fprintf(opts.Output, "Key: %s\n", author.Key)
	if author.BirthDate != "" {
		dates := author.BirthDate
		if author.DeathDate != "" {
			dates += " - " + author.DeathDate
		}
		fmt.Fprintf(opts.Output, "Lived: %s\n", dates)
	}
	if bio := author.BioText(); bio != "" {
		fmt.Fprintf(opts.Output, "\n%s\n", bio)
	}
	return nil
}

// normalizeID strips an optional key prefix so both OL45883W and
// /works/OL45883W are accepted.
func normalizeID(id, prefix string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), prefix)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}
	return nil
}
