package models

import "net/url"

// Filter is the pair of catalog filters understood by the backend.
// It is derived from and serialized back to the /products route query
// string, so the active filter survives restarts and can be shared.
type Filter struct {
	Search   string
	Category string
}

// FilterFromQuery reconstructs a Filter from route query parameters.
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
}

// Values returns the query parameters for this filter. Empty fields are
// omitted: the backend treats a missing parameter as "no filtering".
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	return v
}

// Encode serializes the filter into a query string suitable for a
// navigable route. Encode and FilterFromQuery round-trip.
func (f Filter) Encode() string {
	return f.Values().Encode()
}

// Key returns a canonical cache key for the filter pair. Unlike Encode,
// empty fields are kept so that distinct filters never collide.
func (f Filter) Key() string {
	v := url.Values{}
	v.Set("search", f.Search)
	v.Set("category", f.Category)
	return v.Encode()
}

// IsZero reports whether no filtering is active.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == ""
}
