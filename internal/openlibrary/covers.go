package openlibrary

import "fmt"

// CoverSize selects the cover image resolution.
type CoverSize string

const (
	// CoverSmall is the thumbnail size.
	CoverSmall CoverSize = "S"
	// CoverMedium is the default card size.
	CoverMedium CoverSize = "M"
	// CoverLarge is the detail-view size.
	CoverLarge CoverSize = "L"
)

// CoverURL constructs the cover image URL for a cover ID.
// Returns "" for an absent (non-positive) ID; callers substitute their own
// placeholder. Invalid sizes fall back to medium.
func (c *Client) CoverURL(coverID int, size CoverSize) string {
	if coverID <= 0 {
		return ""
	}

	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverMedium
	}

	return fmt.Sprintf("%s/id/%d-%s.jpg", c.coverBaseURL, coverID, size)
}
