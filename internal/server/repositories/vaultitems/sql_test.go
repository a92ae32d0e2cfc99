package vaultitems

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	since := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	where, args, err := buildWhere([]vault.Condition{
		{Column: vault.ColSearchText, Op: vault.OpILike, Value: "100%_cotton"},
		{Column: vault.ColCategory, Op: vault.OpEq, Value: "Band"},
		{Column: vault.ColVerificationCount, Op: vault.OpGte, Value: 3},
		{Column: vault.ColImageKey, Op: vault.OpIsNotNull},
		{Column: vault.ColCreatedAt, Op: vault.OpGte, Value: since},
	})
	require.NoError(t, err)

	assert.Equal(t, " WHERE search_text ILIKE '%' || $1 || '%' AND category = $2"+
		" AND verification_count >= $3 AND image_key IS NOT NULL AND created_at >= $4", where)
	assert.Equal(t, []any{`100\%\_cotton`, "Band", 3, since}, args)
}

func TestBuildWhere_Empty(t *testing.T) {
	where, args, err := buildWhere(nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhere_Rejects(t *testing.T) {
	_, _, err := buildWhere([]vault.Condition{{Column: "password_hash", Op: vault.OpEq, Value: "x"}})
	assert.ErrorContains(t, err, "unknown column")

	_, _, err = buildWhere([]vault.Condition{{Column: vault.ColBrand, Op: "regex", Value: "x"}})
	assert.ErrorContains(t, err, "unsupported operator")

	_, _, err = buildWhere([]vault.Condition{{Column: vault.ColBrand, Op: vault.OpILike, Value: 7}})
	assert.ErrorContains(t, err, "needs a string")
}

func TestBuildOrder(t *testing.T) {
	order, err := buildOrder([]vault.Ordering{
		{Column: vault.ColVerificationCount, Desc: true},
		{Column: vault.ColCreatedAt, Desc: true},
		{Column: vault.ColID},
	})
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY verification_count DESC, created_at DESC, id ASC", order)

	_, err = buildOrder([]vault.Ordering{{Column: "1; DROP TABLE users"}})
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	assert.Equal(t, "thrash,1986", joinTags([]string{" thrash ", "", "1986"}))
	assert.Equal(t, []string{"thrash", "1986"}, splitTags("thrash,1986"))
	assert.Equal(t, []string{}, splitTags(""))
}

func TestColumns(t *testing.T) {
	assert.True(t, strings.HasPrefix(Columns(""), "id, subject, brand,"))
	assert.True(t, strings.HasSuffix(Columns(""), "contributor_id, created_at"))
	assert.True(t, strings.HasPrefix(Columns("v"), "v.id, v.subject, v.brand,"))
	assert.Equal(t, len(itemColumns), strings.Count(Columns("v"), "v."))
}
