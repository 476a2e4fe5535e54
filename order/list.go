package order

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Filter selects orders for List and export. Zero values mean "don't
// care".
type Filter struct {
	// Query matches case-insensitively against the order id and every
	// item name.
	Query string

	// Status requires exact status equality.
	Status Status

	// From and To bound CreatedAt inclusively.
	From time.Time
	To   time.Time

	// Page selects one fixed-size page of the filtered result,
	// starting at 1. Page 0 returns everything (the export path).
	Page int
}

// Page is one window of the filtered, most-recent-first ledger.
type Page struct {
	Orders   []Order
	Total    int // filtered total across all pages
	Page     int // 0 when unpaginated
	PageSize int
}

// Matches reports whether o passes the filter's predicate.
func (f Filter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(o.ID), q) && !anyItemMatches(o, q) {
			return false
		}
	}
	return true
}

func anyItemMatches(o Order, q string) bool {
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			return true
		}
	}
	return false
}

// List returns the filtered ledger, most recent first. Pagination is
// stable: the sort breaks CreatedAt ties on id.
func (m *Manager) List(ctx context.Context, f Filter) (*Page, error) {
	ledger, err := m.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Order, 0, len(ledger))
	for _, o := range ledger {
		if f.Matches(o) {
			filtered = append(filtered, o)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	result := &Page{Total: len(filtered), Page: f.Page, PageSize: m.pageSize}
	if f.Page <= 0 {
		result.Page = 0
		result.Orders = filtered
		return result, nil
	}

	start := (f.Page - 1) * m.pageSize
	if start >= len(filtered) {
		result.Orders = []Order{}
		return result, nil
	}
	end := start + m.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	result.Orders = filtered[start:end]
	return result, nil
}
