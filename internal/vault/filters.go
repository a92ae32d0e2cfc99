package vault

import (
	"strings"

	"golang.org/x/text/cases"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// Categories is the fixed list of catalog categories, CategoryAll first.
var Categories = []string{
	CategoryAll,
	"Band",
	"Tour",
	"Movie",
	"TV",
	"Sports",
	"Brand",
	"Art",
	"Promo",
	"Event",
	"Other",
}

// IsCategory reports whether c is a real (non-sentinel) category.
func IsCategory(c string) bool {
	if c == CategoryAll {
		return false
	}
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// SortKey selects one of the fixed vault orderings.
type SortKey string

const (
	SortVerified     SortKey = "verified"
	SortNewest       SortKey = "newest"
	SortAlphabetical SortKey = "alphabetical"
	SortScore        SortKey = "score"
)

// ParseSortKey maps a wire value to a SortKey. Anything unknown, including
// the empty string, becomes SortVerified.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNewest, SortAlphabetical, SortScore:
		return k
	default:
		return SortVerified
	}
}

// QuickFilters are the boolean toggles narrowing a vault query.
type QuickFilters struct {
	VerifiedOnly bool `json:"verified_only,omitempty"`
	HasImage     bool `json:"has_image,omitempty"`
	NewThisWeek  bool `json:"new_this_week,omitempty"`
}

// Filters is the client-held filter state for one vault listing.
// Empty strings mean "no filter".
type Filters struct {
	Search       string       `json:"search,omitempty"`
	Category     string       `json:"category,omitempty"`
	YearFilter   string       `json:"year,omitempty"`
	StitchFilter string       `json:"stitch,omitempty"`
	OriginFilter string       `json:"origin,omitempty"`
	BrandFilter  string       `json:"brand,omitempty"`
	SortBy       SortKey      `json:"sort_by,omitempty"`
	Quick        QuickFilters `json:"quick,omitempty"`
}

// NormalizeSearch prepares free text for substring matching: trimmed,
// case-folded, hyphens and underscores turned into spaces, and whitespace
// runs collapsed to one space. "Metal-lica" becomes "metal lica".
func NormalizeSearch(s string) string {
	s = cases.Fold().String(s)
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// SearchText builds the value of the normalised search column from the
// searchable parts of an item.
func SearchText(parts ...string) string {
	return NormalizeSearch(strings.Join(parts, " "))
}
