package vault

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemorySource is a Source over a slice of items. It evaluates a Query the
// same way the SQL repository does and is safe for concurrent use.
type MemorySource struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemorySource returns a source preloaded with items.
func NewMemorySource(items ...Item) *MemorySource {
	m := &MemorySource{}
	m.Add(items...)
	return m
}

// Add appends items to the source.
func (m *MemorySource) Add(items ...Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

// Select implements Source.
func (m *MemorySource) Select(ctx context.Context, q Query) ([]Item, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	m.mu.RLock()
	matched := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		ok, err := matchesAll(it, q.Conditions)
		if err != nil {
			m.mu.RUnlock()
			return nil, 0, err
		}
		if ok {
			matched = append(matched, it)
		}
	}
	m.mu.RUnlock()

	var sortErr error
	slices.SortStableFunc(matched, func(a, b Item) int {
		for _, o := range q.Order {
			c, err := compareColumn(a, b, o.Column)
			if err != nil {
				sortErr = err
				return 0
			}
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	if sortErr != nil {
		return nil, 0, sortErr
	}

	total := len(matched)
	from := max(q.From, 0)
	if from >= total || q.To < from {
		return []Item{}, total, nil
	}
	to := min(q.To+1, total)
	return slices.Clone(matched[from:to]), total, nil
}

func matchesAll(it Item, conds []Condition) (bool, error) {
	for _, c := range conds {
		ok, err := matches(it, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matches(it Item, c Condition) (bool, error) {
	switch c.Op {
	case OpIsNull:
		if c.Column != ColImageKey {
			return false, fmt.Errorf("column %q is not nullable", c.Column)
		}
		return !it.HasImage(), nil
	case OpIsNotNull:
		if c.Column != ColImageKey {
			return false, fmt.Errorf("column %q is not nullable", c.Column)
		}
		return it.HasImage(), nil
	case OpEq:
		v, err := stringColumn(it, c.Column)
		if err != nil {
			return false, err
		}
		return v == fmt.Sprint(c.Value), nil
	case OpILike:
		v, err := stringColumn(it, c.Column)
		if err != nil {
			return false, err
		}
		needle := strings.ToLower(fmt.Sprint(c.Value))
		return strings.Contains(strings.ToLower(v), needle), nil
	case OpGte:
		switch c.Column {
		case ColVerificationCount, ColScore:
			n, ok := c.Value.(int)
			if !ok {
				return false, fmt.Errorf("column %q needs an int, got %T", c.Column, c.Value)
			}
			if c.Column == ColScore {
				return it.Score >= n, nil
			}
			return it.VerificationCount >= n, nil
		case ColCreatedAt:
			ts, ok := c.Value.(time.Time)
			if !ok {
				return false, fmt.Errorf("column %q needs a time, got %T", c.Column, c.Value)
			}
			return !it.CreatedAt.Before(ts), nil
		default:
			return false, fmt.Errorf("column %q does not support gte", c.Column)
		}
	default:
		return false, fmt.Errorf("unsupported operator %q", c.Op)
	}
}

func stringColumn(it Item, col string) (string, error) {
	switch col {
	case ColID:
		return it.ID, nil
	case ColSubject:
		return it.Subject, nil
	case ColBrand:
		return it.Brand, nil
	case ColCategory:
		return it.Category, nil
	case ColYear:
		return it.Year, nil
	case ColStitchType:
		return it.StitchType, nil
	case ColOrigin:
		return it.Origin, nil
	case ColSearchText:
		return ItemSearchText(it), nil
	default:
		return "", fmt.Errorf("unknown text column %q", col)
	}
}

func compareColumn(a, b Item, col string) (int, error) {
	switch col {
	case ColVerificationCount:
		return cmp.Compare(a.VerificationCount, b.VerificationCount), nil
	case ColScore:
		return cmp.Compare(a.Score, b.Score), nil
	case ColCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt), nil
	}
	av, err := stringColumn(a, col)
	if err != nil {
		return 0, err
	}
	bv, _ := stringColumn(b, col)
	return strings.Compare(av, bv), nil
}
