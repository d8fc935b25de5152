package service

import (
	"context"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
)

// SupplierService wraps the supplier repository. Its one piece of
// logic beyond pass-through CRUD is the active-flag toggle, which is
// written as an explicit compare-and-swap: snapshot the current
// record, send the flipped flag, and on failure hand the snapshot back
// untouched so the caller never keeps a tentatively-flipped state.
type SupplierService struct {
	repo repository.Crud[model.Supplier]
}

// NewSupplierService wires a SupplierService.
func NewSupplierService(repo repository.Crud[model.Supplier]) *SupplierService {
	return &SupplierService{repo: repo}
}

// List returns all suppliers.
func (s *SupplierService) List(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.List(ctx)
}

// Get returns one supplier.
func (s *SupplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a supplier.
func (s *SupplierService) Create(ctx context.Context, in model.Supplier) (*model.Supplier, error) {
	return s.repo.Create(ctx, in)
}

// Update replaces a supplier.
func (s *SupplierService) Update(ctx context.Context, id string, in model.Supplier) (*model.Supplier, error) {
	return s.repo.Update(ctx, id, in)
}

// Delete removes a supplier.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleActive flips the supplier's active flag. On success the
// server's record is returned (server truth, not the tentative local
// flip). On failure the pre-toggle snapshot is returned alongside the
// error so callers reconcile back to it.
func (s *SupplierService) ToggleActive(ctx context.Context, id string) (*model.Supplier, error) {
	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := *cur

	tentative := snapshot
	tentative.IsActive = !snapshot.IsActive
	updated, err := s.repo.Update(ctx, id, tentative)
	if err != nil {
		return &snapshot, err
	}
	return updated, nil
}
