package service

import (
	"context"
	"log"
	"strings"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
)

// TenantService wraps the tenant repository and papers over a known
// backend quirk: the tenant overview DTO has no Id field, so a detail
// fetched through it arrives with an empty id. When that happens the
// id is resolved best-effort by matching the hostname against the full
// tenant listing.
type TenantService struct {
	repo repository.Crud[model.Tenant]
}

// NewTenantService wires a TenantService.
func NewTenantService(repo repository.Crud[model.Tenant]) *TenantService {
	return &TenantService{repo: repo}
}

// List returns all tenants.
func (s *TenantService) List(ctx context.Context) ([]model.Tenant, error) {
	return s.repo.List(ctx)
}

// Get returns one tenant, resolving a missing id via the listing.
func (s *TenantService) Get(ctx context.Context, id string) (*model.Tenant, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveID(ctx, t)
	return t, nil
}

// GetByHostname finds the tenant served under the given hostname.
func (s *TenantService) GetByHostname(ctx context.Context, hostname string) (*model.Tenant, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Hostname, hostname) {
			return &all[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create adds a tenant.
func (s *TenantService) Create(ctx context.Context, in model.Tenant) (*model.Tenant, error) {
	return s.repo.Create(ctx, in)
}

// Update replaces a tenant.
func (s *TenantService) Update(ctx context.Context, id string, in model.Tenant) (*model.Tenant, error) {
	return s.repo.Update(ctx, id, in)
}

// Delete removes a tenant.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// resolveID fills a missing tenant id from the listing, keyed by
// hostname. The lookup may legitimately fail (listing unreachable, or
// hostname absent); that is logged and the record returned as-is, id
// still empty.
func (s *TenantService) resolveID(ctx context.Context, t *model.Tenant) {
	if t.ID != "" || t.Hostname == "" {
		return
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("tenants: id resolution listing failed for %s: %v", t.Hostname, err)
		return
	}
	for _, cand := range all {
		if strings.EqualFold(cand.Hostname, t.Hostname) && cand.ID != "" {
			t.ID = cand.ID
			return
		}
	}
	log.Printf("tenants: no listing entry matches hostname %s, id stays unresolved", t.Hostname)
}
