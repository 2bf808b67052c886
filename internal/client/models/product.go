// Package models defines the client-side data models of the catalog CLI:
// products as served by the backend API, creation/patch payloads, and the
// filter pair driving server-side catalog filtering.
package models

// MinPrice is the lowest price the backend accepts for a product.
const MinPrice = 0.01

// Product mirrors the backend product schema. ID is server-assigned and
// immutable; the client never owns the authoritative copy of a product,
// only a cached projection of it.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// CreateProductParams is the payload of a product creation request.
type CreateProductParams struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// Validate checks the creation payload against the backend's product schema
// before any network call is made. It returns a FieldErrors value listing
// every offending field, or nil if the payload is acceptable.
func (p CreateProductParams) Validate() error {
	var fe FieldErrors
	if p.Name == "" {
		fe = append(fe, FieldError{Field: "name", Message: "name is required"})
	}
	if p.Category == "" {
		fe = append(fe, FieldError{Field: "category", Message: "category is required"})
	}
	if p.Description == "" {
		fe = append(fe, FieldError{Field: "description", Message: "description is required"})
	}
	if p.Price < MinPrice {
		fe = append(fe, FieldError{Field: "price", Message: "price must be at least 0.01"})
	}
	if p.Stock < 0 {
		fe = append(fe, FieldError{Field: "stock", Message: "stock must not be negative"})
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// ProductPatch describes a partial product update. Nil fields are omitted
// from the PATCH body, so the server only ever sees the fields the user
// actually changed.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p ProductPatch) IsZero() bool {
	return p.Name == nil && p.Category == nil && p.Description == nil &&
		p.Price == nil && p.Stock == nil
}
