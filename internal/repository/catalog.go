package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/normalize"
	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

// Crud is the uniform access surface for the catalog entities
// (categories, ingredients, ingredient categories, suppliers, dishes,
// tenants). All of them share the same REST shape on the backend.
type Crud[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in T) (*T, error)
	Update(ctx context.Context, id string, in T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// HTTPCrud is the production Crud implementation. Every response body
// passes through the entity's normalization table before decoding,
// because the catalog endpoints are the ones that still emit mixed
// PascalCase/camelCase payloads.
type HTTPCrud[T any] struct {
	client *upstream.Client
	path   string
	one    func(map[string]any) map[string]any
	many   func(any) []map[string]any
}

func newHTTPCrud[T any](c *upstream.Client, path string,
	one func(map[string]any) map[string]any, many func(any) []map[string]any) *HTTPCrud[T] {
	return &HTTPCrud[T]{client: c, path: path, one: one, many: many}
}

// NewCategories returns the repo for menu categories.
func NewCategories(c *upstream.Client) *HTTPCrud[model.Category] {
	return newHTTPCrud[model.Category](c, "/categories", normalize.Category, normalize.Categories)
}

// NewIngredientCategories returns the repo for ingredient categories.
func NewIngredientCategories(c *upstream.Client) *HTTPCrud[model.IngredientCategory] {
	return newHTTPCrud[model.IngredientCategory](c, "/ingredients/categories",
		normalize.IngredientCategory, normalize.IngredientCategories)
}

// NewIngredients returns the repo for ingredients.
func NewIngredients(c *upstream.Client) *HTTPCrud[model.Ingredient] {
	return newHTTPCrud[model.Ingredient](c, "/ingredients", normalize.Ingredient, normalize.Ingredients)
}

// NewSuppliers returns the repo for suppliers.
func NewSuppliers(c *upstream.Client) *HTTPCrud[model.Supplier] {
	return newHTTPCrud[model.Supplier](c, "/suppliers", normalize.Supplier, normalize.Suppliers)
}

// NewDishes returns the repo for dishes.
func NewDishes(c *upstream.Client) *HTTPCrud[model.Dish] {
	return newHTTPCrud[model.Dish](c, "/dishes", normalize.Dish, normalize.Dishes)
}

// NewTenants returns the repo for tenants.
func NewTenants(c *upstream.Client) *HTTPCrud[model.Tenant] {
	return newHTTPCrud[model.Tenant](c, "/tenants", normalize.Tenant, normalize.Tenants)
}

// List fetches and normalizes the full collection. The backend answers
// either with a bare array or an object wrapping it under items.
func (r *HTTPCrud[T]) List(ctx context.Context) ([]T, error) {
	b, err := r.client.Get(ctx, r.path, nil)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", r.path, err)
	}
	var out []T
	if err := decodeInto(r.many(unwrapItems(raw)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches and normalizes a single record.
func (r *HTTPCrud[T]) Get(ctx context.Context, id string) (*T, error) {
	b, err := r.client.Get(ctx, r.path+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}
	return r.decodeOne(b)
}

// Create posts a new record and returns the normalized result.
func (r *HTTPCrud[T]) Create(ctx context.Context, in T) (*T, error) {
	b, err := r.client.Post(ctx, r.path, in)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}
	return r.decodeOne(b)
}

// Update replaces a record and returns the normalized result.
func (r *HTTPCrud[T]) Update(ctx context.Context, id string, in T) (*T, error) {
	b, err := r.client.Put(ctx, r.path+"/"+url.PathEscape(id), in)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}
	return r.decodeOne(b)
}

// Delete removes a record.
func (r *HTTPCrud[T]) Delete(ctx context.Context, id string) error {
	return mapUpstreamErr(r.client.Delete(ctx, r.path+"/"+url.PathEscape(id)))
}

func (r *HTTPCrud[T]) decodeOne(b []byte) (*T, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", r.path, err)
	}
	var out T
	if err := decodeInto(r.one(raw), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// unwrapItems pulls the array out of an {items: [...]} envelope, with
// the usual casing tolerance; bare arrays pass through unchanged.
func unwrapItems(raw any) any {
	if m, ok := raw.(map[string]any); ok {
		if v, ok := m["items"]; ok {
			return v
		}
		if v, ok := m["Items"]; ok {
			return v
		}
	}
	return raw
}

// decodeInto moves a normalized map (or slice of maps) into a typed
// value via JSON round-trip. Normalized keys are canonical camelCase,
// matching the model tags.
func decodeInto(normalized, out any) error {
	b, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
