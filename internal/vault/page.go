package vault

import (
	"strings"
	"time"
)

// Item is the summary row of one cataloged shirt as shown in vault listings.
type Item struct {
	ID                string    `json:"id"`
	Subject           string    `json:"subject"`
	Brand             string    `json:"brand"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Category          string    `json:"category"`
	Year              string    `json:"year"`
	Tags              []string  `json:"tags,omitempty"`
	StitchType        string    `json:"stitch_type"`
	Origin            string    `json:"origin"`
	ImageKey          *string   `json:"image_key,omitempty"`
	VerificationCount int       `json:"verification_count"`
	Score             int       `json:"score"`
	ContributorID     string    `json:"contributor_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasImage reports whether an image has been attached to the item.
func (i Item) HasImage() bool {
	return i.ImageKey != nil && *i.ImageKey != ""
}

// Verified reports whether the item reached the community verification bar.
func (i Item) Verified() bool {
	return i.VerificationCount >= VerifiedCount
}

// ItemSearchText is the normalised search column value for i.
func ItemSearchText(i Item) string {
	return SearchText(i.Subject, i.Brand, i.Title, strings.Join(i.Tags, " "))
}

// Page is one bounded slice of a filtered, sorted vault listing.
type Page struct {
	Items      []Item `json:"items"`
	TotalCount int    `json:"total_count"`
	HasMore    bool   `json:"has_more"`
	NextOffset int    `json:"next_offset"`
}

// FlattenPages concatenates the items of pages in order. Nil pages are
// skipped and an empty input yields an empty, non-nil slice.
func FlattenPages(pages []*Page) []Item {
	n := 0
	for _, p := range pages {
		if p != nil {
			n += len(p.Items)
		}
	}
	out := make([]Item, 0, n)
	for _, p := range pages {
		if p != nil {
			out = append(out, p.Items...)
		}
	}
	return out
}
