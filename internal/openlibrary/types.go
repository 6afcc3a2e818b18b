package openlibrary

// BookRecord is a single document from the OpenLibrary search API.
// Every field except Key and Title is optional in practice.
type BookRecord struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	CoverID          int      `json:"cover_i,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	Subjects         []string `json:"subject,omitempty"`
	Publishers       []string `json:"publisher,omitempty"`
	Languages        []string `json:"language,omitempty"`
	ISBNs            []string `json:"isbn,omitempty"`
	RatingsAverage   float64  `json:"ratings_average,omitempty"`
	RatingsCount     int      `json:"ratings_count,omitempty"`
	PageCountMedian  int      `json:"number_of_pages_median,omitempty"`
}

// PopularityScore is ratings count weighted by average rating.
// Zero when either component is absent.
func (b BookRecord) PopularityScore() float64 {
	return float64(b.RatingsCount) * b.RatingsAverage
}

// FirstAuthor returns the first author name, or "Unknown" when none is listed.
func (b BookRecord) FirstAuthor() string {
	if len(b.AuthorNames) == 0 {
		return "Unknown"
	}
	return b.AuthorNames[0]
}

// searchResponse matches the search.json response envelope.
type searchResponse struct {
	NumFound int          `json:"numFound"`
	Docs     []BookRecord `json:"docs"`
}

// WorkDetails is the loosely-typed response from /works/<id>.json.
type WorkDetails struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description any      `json:"description"`
	Subjects    []string `json:"subjects"`
	Covers      []int    `json:"covers"`
}

// DescriptionText flattens the description field, which the API returns
// either as a string or as {"type": ..., "value": ...}.
func (w WorkDetails) DescriptionText() string {
	switch v := w.Description.(type) {
	case string:
		return v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			return val
		}
	}
	return ""
}

// AuthorDetails is the loosely-typed response from /authors/<id>.json.
type AuthorDetails struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	DeathDate    string `json:"death_date"`
	Bio          any    `json:"bio"`
	PersonalName string `json:"personal_name"`
}

// BioText flattens the bio field, same dual shape as work descriptions.
func (a AuthorDetails) BioText() string {
	switch v := a.Bio.(type) {
	case string:
		return v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			return val
		}
	}
	return ""
}
