package vault

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Metal-lica", "metal lica"},
		{"  IRON__maiden  ", "iron maiden"},
		{"grateful \t\n dead", "grateful dead"},
		{"---", ""},
		{"", ""},
		{"Motörhead", "motörhead"},
		{"STRASSE", "strasse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSearch(tt.in), "input %q", tt.in)
	}
}

func TestBuildQuery_NoFilters(t *testing.T) {
	q := BuildQuery(48, Filters{Category: CategoryAll}, fixedNow)

	want := Query{
		From: 48,
		To:   71,
		Order: []Ordering{
			{Column: ColVerificationCount, Desc: true},
			{Column: ColCreatedAt, Desc: true},
			{Column: ColID},
		},
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PageSize, q.Limit())
}

func TestBuildQuery_AllFilters(t *testing.T) {
	f := Filters{
		Search:       "Nirvana_In-Utero",
		Category:     "Band",
		YearFilter:   " 1993 ",
		StitchFilter: "single",
		OriginFilter: "usa",
		BrandFilter:  "giant",
		SortBy:       SortScore,
		Quick:        QuickFilters{VerifiedOnly: true, HasImage: true, NewThisWeek: true},
	}
	q := BuildQuery(0, f, fixedNow)

	want := []Condition{
		{Column: ColSearchText, Op: OpILike, Value: "nirvana in utero"},
		{Column: ColCategory, Op: OpEq, Value: "Band"},
		{Column: ColYear, Op: OpEq, Value: "1993"},
		{Column: ColStitchType, Op: OpILike, Value: "single"},
		{Column: ColOrigin, Op: OpILike, Value: "usa"},
		{Column: ColBrand, Op: OpILike, Value: "giant"},
		{Column: ColVerificationCount, Op: OpGte, Value: VerifiedCount},
		{Column: ColImageKey, Op: OpIsNotNull},
		{Column: ColCreatedAt, Op: OpGte, Value: fixedNow.Add(-7 * 24 * time.Hour)},
	}
	if diff := cmp.Diff(want, q.Conditions); diff != "" {
		t.Fatalf("conditions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []Ordering{{Column: ColScore, Desc: true}, {Column: ColID}}, q.Order)
}

func TestBuildQuery_WhitespaceSearchIsNoFilter(t *testing.T) {
	q := BuildQuery(0, Filters{Search: " - _ "}, fixedNow)
	assert.Empty(t, q.Conditions)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortKey("Newest"))
	assert.Equal(t, SortAlphabetical, ParseSortKey("alphabetical"))
	assert.Equal(t, SortScore, ParseSortKey(" score "))
	assert.Equal(t, SortVerified, ParseSortKey(""))
	assert.Equal(t, SortVerified, ParseSortKey("random"))
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Band"))
	assert.False(t, IsCategory(CategoryAll))
	assert.False(t, IsCategory("band"))
}
