package vaultitems

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// columns maps query columns to SQL expressions. Anything else is rejected.
var columns = map[string]string{
	vault.ColID:                "id",
	vault.ColSubject:           "subject",
	vault.ColBrand:             "brand",
	vault.ColCategory:          "category",
	vault.ColYear:              "year",
	vault.ColStitchType:        "stitch_type",
	vault.ColOrigin:            "origin",
	vault.ColImageKey:          "image_key",
	vault.ColVerificationCount: "verification_count",
	vault.ColScore:             "score",
	vault.ColCreatedAt:         "created_at",
	vault.ColSearchText:        "search_text",
}

// itemColumns is the row shape ScanItem reads, in order.
var itemColumns = []string{"id", "subject", "brand", "title", "slug", "category", "year", "tags",
	"stitch_type", "origin", "image_key", "verification_count", "score", "contributor_id", "created_at"}

var selectColumns = Columns("")

// Columns lists the vault_items columns ScanItem expects, qualified with
// alias when it is not empty. Other repositories joining vault_items use it
// to select items.
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(itemColumns, ", ")
	}
	qualified := make([]string, len(itemColumns))
	for i, c := range itemColumns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes v match literally inside a LIKE pattern.
func escapeLike(v string) string {
	return likeEscaper.Replace(v)
}

func column(name string) (string, error) {
	c, ok := columns[name]
	if !ok {
		return "", fmt.Errorf("unknown column %q", name)
	}
	return c, nil
}

// buildWhere renders conditions as an AND-ed WHERE clause with $n
// placeholders. It returns an empty clause for no conditions.
func buildWhere(conds []vault.Condition) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	for _, c := range conds {
		col, err := column(c.Column)
		if err != nil {
			return "", nil, err
		}
		switch c.Op {
		case vault.OpEq:
			parts = append(parts, col+" = "+next(c.Value))
		case vault.OpILike:
			s, ok := c.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("ilike on %q needs a string, got %T", c.Column, c.Value)
			}
			parts = append(parts, col+" ILIKE '%' || "+next(escapeLike(s))+" || '%'")
		case vault.OpGte:
			parts = append(parts, col+" >= "+next(c.Value))
		case vault.OpIsNull:
			parts = append(parts, col+" IS NULL")
		case vault.OpIsNotNull:
			parts = append(parts, col+" IS NOT NULL")
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildOrder(order []vault.Ordering) (string, error) {
	if len(order) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(order))
	for _, o := range order {
		col, err := column(o.Column)
		if err != nil {
			return "", err
		}
		if o.Desc {
			col += " DESC"
		} else {
			col += " ASC"
		}
		parts = append(parts, col)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func joinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
