package openlibrary

import (
	"context"
	"math/rand"
)

// trendingTerms is the fixed rotation of subject searches used when the user
// asks for trending books rather than searching for something specific.
var trendingTerms = []string{
	"Python",
	"JavaScript",
	"React",
	"Machine Learning",
	"Data Science",
}

// Trending runs a subject search for a term drawn from the trending rotation
// using the provided source. Returns the chosen term alongside the results.
func (c *Client) Trending(ctx context.Context, rng *rand.Rand, limit int) (string, []BookRecord, error) {
	term := trendingTerms[rng.Intn(len(trendingTerms))]

	records, err := c.Search(ctx, term, SearchSubject, limit)
	if err != nil {
		return term, nil, err
	}
	return term, records, nil
}
