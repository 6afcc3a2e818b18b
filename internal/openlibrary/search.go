package openlibrary

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/mlahtinen/bookfind/internal/cache"
	"github.com/mlahtinen/bookfind/internal/errors"
)

// Search queries the API and returns usable book records, pre-sorted once by
// popularity descending so a downstream "relevance" sort is a pass-through.
// Records without a title are discarded. A query that succeeds but matches
// nothing usable returns an EmptyResultError.
//
// When caching is enabled the response cache is consulted by request
// signature first; fresh hits skip the network entirely.
func (c *Client) Search(ctx context.Context, term string, searchType SearchType, limit int) ([]BookRecord, error) {
	if err := ValidateTerm(term); err != nil {
		return nil, err
	}

	response, err := c.fetchSearch(ctx, term, searchType, limit)
	if err != nil {
		return nil, err
	}

	records := make([]BookRecord, 0, len(response.Docs))
	for _, doc := range response.Docs {
		if doc.Title == "" {
			continue
		}
		records = append(records, doc)
	}

	if len(records) == 0 {
		return nil, errors.NewEmptyResultError(term)
	}

	// Fetch-time popularity order doubles as the relevance order downstream.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PopularityScore() > records[j].PopularityScore()
	})

	return records, nil
}

func (c *Client) fetchSearch(ctx context.Context, term string, searchType SearchType, limit int) (searchResponse, error) {
	endpoint := BuildSearchURL(c.baseURL, term, searchType, limit)

	if !c.useCache {
		return c.doSearchRequest(ctx, endpoint)
	}

	signature := SearchSignature(term, searchType, limit)
	response, _, err := cache.GetOrFetch(signature, func() (searchResponse, error) {
		return c.doSearchRequest(ctx, endpoint)
	})
	return response, err
}

func (c *Client) doSearchRequest(ctx context.Context, endpoint string) (searchResponse, error) {
	var response searchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return searchResponse{}, err
	}
	return response, nil
}

// Work fetches full details for a work key like "OL45883W".
func (c *Client) Work(ctx context.Context, workID string) (*WorkDetails, error) {
	endpoint := fmt.Sprintf("%s/works/%s.json", c.baseURL, url.PathEscape(workID))

	var details WorkDetails
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Author fetches full details for an author key like "OL26320A".
func (c *Client) Author(ctx context.Context, authorID string) (*AuthorDetails, error) {
	endpoint := fmt.Sprintf("%s/authors/%s.json", c.baseURL, url.PathEscape(authorID))

	var details AuthorDetails
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// getJSON performs a rate-limited GET and decodes the JSON body into target,
// mapping every failure mode to one of the typed pipeline errors.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return &errors.TimeoutError{Err: err}
		}
		return &errors.NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewServerError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &errors.ParseError{Err: err}
	}

	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if stdErrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return stdErrors.As(err, &urlErr) && urlErr.Timeout()
}
