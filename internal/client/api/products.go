package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

// ListProducts fetches the catalog filtered server-side by the given
// filter; the client never filters locally. Both observed response shapes
// ({"data":[...]} and a bare array) are accepted.
func (c *HTTPClient) ListProducts(ctx context.Context, filter models.Filter) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/products", filter.Values(), nil, &raw); err != nil {
		return nil, mapAuthenticated(err)
	}
	return decodeProductList(raw)
}

// GetProduct fetches a single product by id.
func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &p); err != nil {
		return models.Product{}, mapAuthenticated(err)
	}
	return p, nil
}

// CreateProduct submits a creation payload and returns the product with
// its server-assigned id. Server-side validation problems come back as
// models.FieldErrors so the form can show them next to the inputs.
func (c *HTTPClient) CreateProduct(ctx context.Context, params models.CreateProductParams) (models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, params, &p); err != nil {
		return models.Product{}, mapAuthenticated(err)
	}
	return p, nil
}

// UpdateProduct applies a partial update; only the fields set in patch are
// sent.
func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) error {
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d", id), nil, patch, nil); err != nil {
		return mapAuthenticated(err)
	}
	return nil
}

// DeleteProduct removes a product by id.
func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil); err != nil {
		return mapAuthenticated(err)
	}
	return nil
}

// decodeProductList tolerates both list body shapes the backend has been
// observed to return.
func decodeProductList(raw json.RawMessage) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []models.Product
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: malformed product list: %v", ErrUnavailable, err)
		}
		return items, nil
	}

	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed product list: %v", ErrUnavailable, err)
	}
	return envelope.Data, nil
}
