// Package collection computes derived view lists from server-fetched
// collections. Derive is pure: it never mutates its input and the same
// inputs always produce the same output.
package collection

import (
	"sort"
	"strings"

	"github.com/nspraveen/tripnest/internal/domain"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortRatingAsc  SortKey = "ratingAsc"
	SortRatingDesc SortKey = "ratingDesc"
)

type Criteria struct {
	Query         string
	AvailableOnly bool
	Sort          SortKey
}

// Fields describes how a collection element exposes the pieces the
// criteria act on. A nil accessor means the element type does not have
// that facet and the corresponding criterion is ignored.
type Fields[T any] struct {
	Search    []func(T) string
	Available func(T) bool
	Price     func(T) float64
	Rating    func(T) float64
}

func Derive[T any](items []T, criteria Criteria, fields Fields[T]) []T {
	out := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	for _, item := range items {
		if criteria.AvailableOnly && fields.Available != nil && !fields.Available(item) {
			continue
		}
		if query != "" && !matches(item, query, fields.Search) {
			continue
		}
		out = append(out, item)
	}

	if key := sortField(criteria.Sort, fields); key != nil {
		asc := criteria.Sort == SortPriceAsc || criteria.Sort == SortRatingAsc
		sort.SliceStable(out, func(i, j int) bool {
			if asc {
				return key(out[i]) < key(out[j])
			}
			return key(out[i]) > key(out[j])
		})
	}
	return out
}

// matches reports whether any configured text field contains the query.
func matches[T any](item T, query string, search []func(T) string) bool {
	for _, field := range search {
		if strings.Contains(strings.ToLower(field(item)), query) {
			return true
		}
	}
	return false
}

func sortField[T any](key SortKey, fields Fields[T]) func(T) float64 {
	switch key {
	case SortPriceAsc, SortPriceDesc:
		return fields.Price
	case SortRatingAsc, SortRatingDesc:
		return fields.Rating
	default:
		return nil
	}
}

// HotelFields configures derivation over hotels: search spans name and
// location, availability and both sort keys apply.
func HotelFields() Fields[domain.Hotel] {
	return Fields[domain.Hotel]{
		Search: []func(domain.Hotel) string{
			func(h domain.Hotel) string { return h.Name },
			func(h domain.Hotel) string { return h.Location },
		},
		Available: func(h domain.Hotel) bool { return h.Available },
		Price:     func(h domain.Hotel) float64 { return h.PricePerNight },
		Rating:    func(h domain.Hotel) float64 { return h.Rating },
	}
}

// BlogFields configures derivation over blogs: search spans title and
// body; blogs have no availability flag and no numeric sort facets.
func BlogFields() Fields[domain.Blog] {
	return Fields[domain.Blog]{
		Search: []func(domain.Blog) string{
			func(b domain.Blog) string { return b.Title },
			func(b domain.Blog) string { return b.Body },
		},
	}
}

func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return SortKey(raw)
	default:
		return SortNone
	}
}
