package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
)

// noteFrontmatter is the YAML header written for each exported book note.
// Genre and level are derived from the raw record when the note is built.
type noteFrontmatter struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors,omitempty"`
	Year    int      `yaml:"year,omitempty"`
	Rating  float64  `yaml:"rating,omitempty"`
	Pages   int      `yaml:"pages,omitempty"`
	Genre   string   `yaml:"genre,omitempty"`
	Level   string   `yaml:"level,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	WorkKey string   `yaml:"openlibrary,omitempty"`
	Type    string   `yaml:"type"`
}

// ExportMarkdown writes one markdown note per favorite into dir, creating it
// if needed. Existing notes are skipped unless overwrite is set. It returns
// the number of notes written.
func (l *List) ExportMarkdown(dir string, overwrite bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	written := 0
	for _, book := range l.books {
		path := filepath.Join(dir, sanitizeFilename(book.Title)+".md")
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				slog.Info("Note already exists, skipping", "filename", path)
				continue
			}
		}

		content, err := buildNote(book)
		if err != nil {
			return written, fmt.Errorf("failed to build note for %q: %w", book.Title, err)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return written, fmt.Errorf("failed to write note: %w", err)
		}
		written++
	}
	return written, nil
}

// ExportJSON writes the full favorites list as indented JSON to path.
func (l *List) ExportJSON(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			slog.Info("JSON export already exists, skipping", "filename", path)
			return nil
		}
	}

	data, err := json.MarshalIndent(l.books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}
	return nil
}

func buildNote(book openlibrary.BookRecord) ([]byte, error) {
	fm := noteFrontmatter{
		Title:   book.Title,
		Authors: book.AuthorNames,
		Year:    book.FirstPublishYear,
		Rating:  book.RatingsAverage,
		Pages:   book.PageCountMedian,
		Genre:   enrich.PrimaryGenre(book),
		Level:   string(enrich.ReadingLevelFor(book)),
		Tags:    book.Subjects,
		WorkKey: book.Key,
		Type:    "book",
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	buf.Write(header)
	buf.WriteString("---\n\n")

	buf.WriteString("# " + book.Title + "\n\n")
	buf.WriteString("By " + enrich.FormatAuthors(book.AuthorNames) + "\n")
	if readTime := enrich.FormatReadTime(book.PageCountMedian); readTime != "" {
		buf.WriteString("\nEstimated read time: " + readTime + "\n")
	}
	formats := []string{string(enrich.FormatPrint)}
	if book.CoverID > 0 {
		formats = append(formats, string(enrich.FormatDigital))
	}
	buf.WriteString("\nFormats: " + strings.Join(formats, ", ") + "\n")

	return buf.Bytes(), nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}
