// Package enrich derives display and ranking fields from raw book records.
//
// All derivations are pure functions of the record except availability and
// the audio format, which are *simulated* placeholder signals drawn from an
// injected rand source: there is no real inventory backend behind them.
package enrich

import (
	"math"
	"math/rand"
	"strings"

	"github.com/mlahtinen/bookfind/internal/openlibrary"
)

// AvailabilityStatus is the simulated lending status of a book.
type AvailabilityStatus string

const (
	// Available means the simulated inventory has copies.
	Available AvailabilityStatus = "Available"
	// Limited means the simulated inventory is constrained.
	Limited AvailabilityStatus = "Limited"
)

// ReadingLevel buckets a book by assumed difficulty.
type ReadingLevel string

const (
	// LevelAdvanced covers technical subject matter.
	LevelAdvanced ReadingLevel = "Advanced"
	// LevelClassic covers pre-1950 publications.
	LevelClassic ReadingLevel = "Classic"
	// LevelIntermediate is the default bucket.
	LevelIntermediate ReadingLevel = "Intermediate"
)

// Format is a distribution format a book is assumed to exist in.
type Format string

const (
	// FormatPrint is always present.
	FormatPrint Format = "Print"
	// FormatDigital is present when a cover image exists.
	FormatDigital Format = "Digital"
	// FormatAudio is simulated.
	FormatAudio Format = "Audio"
)

// DefaultGenre is used when a record carries no subject tags.
const DefaultGenre = "General"

// technicalSubjects mark a book as advanced reading.
var technicalSubjects = []string{
	"Computer Science",
	"Programming",
	"Mathematics",
	"Engineering",
}

// Reading-time model: 250 words per page at 200 words per minute.
const (
	wordsPerPage     = 250
	wordsPerMinute   = 200
	minutesPerHour   = 60
	classicYearLimit = 1950
	// Simulation odds for the placeholder signals
	availableProbability = 0.7
	audioProbability     = 0.3
)

// EnrichedBook is a BookRecord plus derived fields.
type EnrichedBook struct {
	openlibrary.BookRecord

	PopularityScore        float64            `json:"popularity_score"`
	EstimatedReadTimeHours *int               `json:"estimated_read_time_hours,omitempty"`
	PrimaryGenre           string             `json:"primary_genre"`
	AvailabilityStatus     AvailabilityStatus `json:"availability_status"`
	ReadingLevel           ReadingLevel       `json:"reading_level"`
	Formats                []Format           `json:"formats"`
}

// Enrich derives the computed fields for a single record. The rand source
// drives only the simulated availability/audio bits; every other output is
// deterministic for a given record, so enriching the same record twice with
// any source yields identical values for them.
func Enrich(record openlibrary.BookRecord, rng *rand.Rand) EnrichedBook {
	book := EnrichedBook{
		BookRecord:      record,
		PopularityScore: record.PopularityScore(),
		PrimaryGenre:    PrimaryGenre(record),
		ReadingLevel:    ReadingLevelFor(record),
	}

	if record.PageCountMedian > 0 {
		hours := estimatedReadTimeHours(record.PageCountMedian)
		book.EstimatedReadTimeHours = &hours
	}

	if rng.Float64() < availableProbability {
		book.AvailabilityStatus = Available
	} else {
		book.AvailabilityStatus = Limited
	}

	book.Formats = formats(record, rng)

	return book
}

// EnrichAll enriches a fetched result set in order. Enrichment happens
// exactly once per fetch; downstream filtering and sorting operate on the
// returned slice without re-deriving anything.
func EnrichAll(records []openlibrary.BookRecord, rng *rand.Rand) []EnrichedBook {
	books := make([]EnrichedBook, 0, len(records))
	for _, record := range records {
		books = append(books, Enrich(record, rng))
	}
	return books
}

func estimatedReadTimeHours(pages int) int {
	return int(math.Ceil(float64(pages*wordsPerPage) / float64(wordsPerMinute*minutesPerHour)))
}

// PrimaryGenre is the first subject tag, or DefaultGenre when none exist.
// Exported so consumers of raw records can derive it without enriching.
func PrimaryGenre(record openlibrary.BookRecord) string {
	if len(record.Subjects) > 0 {
		return record.Subjects[0]
	}
	return DefaultGenre
}

// ReadingLevelFor buckets a raw record by assumed difficulty.
func ReadingLevelFor(record openlibrary.BookRecord) ReadingLevel {
	for _, subject := range record.Subjects {
		for _, technical := range technicalSubjects {
			if strings.Contains(strings.ToLower(subject), strings.ToLower(technical)) {
				return LevelAdvanced
			}
		}
	}

	if record.FirstPublishYear > 0 && record.FirstPublishYear < classicYearLimit {
		return LevelClassic
	}

	return LevelIntermediate
}

func formats(record openlibrary.BookRecord, rng *rand.Rand) []Format {
	result := []Format{FormatPrint}

	if record.CoverID > 0 {
		result = append(result, FormatDigital)
	}

	if rng.Float64() < audioProbability {
		result = append(result, FormatAudio)
	}

	return result
}
