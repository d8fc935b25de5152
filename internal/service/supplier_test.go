package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
)

func supplierRepo(seed ...model.Supplier) *repository.MemoryCrud[model.Supplier] {
	repo := repository.NewMemoryCrud(
		func(s model.Supplier) string { return s.ID },
		func(s model.Supplier, id string) model.Supplier { s.ID = id; return s },
	)
	for _, s := range seed {
		_, _ = repo.Create(context.Background(), s)
	}
	return repo
}

// updateFails rejects every Update, simulating a backend outage in the
// middle of a toggle.
type updateFails struct {
	repository.Crud[model.Supplier]
}

func (r updateFails) Update(ctx context.Context, id string, in model.Supplier) (*model.Supplier, error) {
	return nil, fmt.Errorf("backend down")
}

func TestToggleActiveAppliesServerTruth(t *testing.T) {
	repo := supplierRepo(model.Supplier{ID: "s1", Name: "Acme", IsActive: true})
	svc := NewSupplierService(repo)

	got, err := svc.ToggleActive(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Error("toggle should have flipped the flag off")
	}
	stored, _ := repo.Get(context.Background(), "s1")
	if stored.IsActive {
		t.Error("server record should be flipped too")
	}
}

func TestToggleActiveRestoresSnapshotOnFailure(t *testing.T) {
	repo := supplierRepo(model.Supplier{ID: "s1", Name: "Acme", IsActive: true})
	svc := NewSupplierService(updateFails{repo})

	got, err := svc.ToggleActive(context.Background(), "s1")
	if err == nil {
		t.Fatal("expected the toggle to fail")
	}
	if got == nil || !got.IsActive {
		t.Errorf("failed toggle must hand back the pre-toggle snapshot, got %+v", got)
	}
	stored, _ := repo.Get(context.Background(), "s1")
	if !stored.IsActive {
		t.Error("stored record must be untouched after a failed toggle")
	}
}
