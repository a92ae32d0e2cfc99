package vault

import (
	"strings"
	"time"
)

// PageSize is the fixed number of items requested per vault page.
const PageSize = 24

// VerifiedCount is the verification count at which an item counts as
// community verified.
const VerifiedCount = 3

// newWindow is the look-back used by the "new this week" quick filter.
const newWindow = 7 * 24 * time.Hour

// Columns of the vault item table referenced by queries.
const (
	ColID                = "id"
	ColSubject           = "subject"
	ColBrand             = "brand"
	ColCategory          = "category"
	ColYear              = "year"
	ColStitchType        = "stitch_type"
	ColOrigin            = "origin"
	ColImageKey          = "image_key"
	ColVerificationCount = "verification_count"
	ColScore             = "score"
	ColCreatedAt         = "created_at"
	ColSearchText        = "search_text"
)

// Op is a predicate supported by the tabular store.
type Op string

const (
	OpEq        Op = "eq"
	OpILike     Op = "ilike" // case-insensitive substring
	OpGte       Op = "gte"
	OpIsNull    Op = "is_null"
	OpIsNotNull Op = "is_not_null"
)

// Condition is one column predicate. Value is unused for the null checks.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Ordering is one ORDER BY key.
type Ordering struct {
	Column string
	Desc   bool
}

// Query is a store-agnostic description of one page request: conditions
// are ANDed, From and To are inclusive row indexes into the ordered result.
type Query struct {
	Conditions []Condition
	Order      []Ordering
	From       int
	To         int
}

// Limit is the number of rows covered by [From, To].
func (q Query) Limit() int {
	return q.To - q.From + 1
}

// BuildQuery translates filters and an offset into a page query. now is the
// reference time for the "new this week" filter.
func BuildQuery(offset int, f Filters, now time.Time) Query {
	q := Query{From: offset, To: offset + PageSize - 1}

	if s := NormalizeSearch(f.Search); s != "" {
		q.Conditions = append(q.Conditions, Condition{Column: ColSearchText, Op: OpILike, Value: s})
	}
	if f.Category != "" && f.Category != CategoryAll {
		q.Conditions = append(q.Conditions, Condition{Column: ColCategory, Op: OpEq, Value: f.Category})
	}
	if v := strings.TrimSpace(f.YearFilter); v != "" {
		q.Conditions = append(q.Conditions, Condition{Column: ColYear, Op: OpEq, Value: v})
	}
	if v := strings.TrimSpace(f.StitchFilter); v != "" {
		q.Conditions = append(q.Conditions, Condition{Column: ColStitchType, Op: OpILike, Value: v})
	}
	if v := strings.TrimSpace(f.OriginFilter); v != "" {
		q.Conditions = append(q.Conditions, Condition{Column: ColOrigin, Op: OpILike, Value: v})
	}
	if v := strings.TrimSpace(f.BrandFilter); v != "" {
		q.Conditions = append(q.Conditions, Condition{Column: ColBrand, Op: OpILike, Value: v})
	}
	if f.Quick.VerifiedOnly {
		q.Conditions = append(q.Conditions, Condition{Column: ColVerificationCount, Op: OpGte, Value: VerifiedCount})
	}
	if f.Quick.HasImage {
		q.Conditions = append(q.Conditions, Condition{Column: ColImageKey, Op: OpIsNotNull})
	}
	if f.Quick.NewThisWeek {
		q.Conditions = append(q.Conditions, Condition{Column: ColCreatedAt, Op: OpGte, Value: now.Add(-newWindow)})
	}

	q.Order = orderingFor(ParseSortKey(string(f.SortBy)))
	return q
}

func orderingFor(k SortKey) []Ordering {
	var order []Ordering
	switch k {
	case SortNewest:
		order = []Ordering{{Column: ColCreatedAt, Desc: true}}
	case SortAlphabetical:
		order = []Ordering{{Column: ColSubject}}
	case SortScore:
		order = []Ordering{{Column: ColScore, Desc: true}}
	default:
		order = []Ordering{
			{Column: ColVerificationCount, Desc: true},
			{Column: ColCreatedAt, Desc: true},
		}
	}
	// id keeps pages stable when the sort keys tie
	return append(order, Ordering{Column: ColID})
}
