package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

func catalogServer(t *testing.T, h http.Handler) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return upstream.New(srv.URL, "", upstream.NewMemoryTokenStore())
}

func TestListNormalizesPascalCasePayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		// Legacy endpoint shape: PascalCase keys under an Items envelope.
		_, _ = w.Write([]byte(`{"Items":[
			{"Id":"c1","Name":"Drinks","IsActive":false},
			{"id":"c2","name":"Mains","displayOrder":2}
		]}`))
	})
	repo := NewCategories(catalogServer(t, mux))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "c1" || items[0].Name != "Drinks" {
		t.Errorf("PascalCase row not normalized: %+v", items[0])
	}
	if items[0].IsActive {
		t.Error("explicit IsActive=false must survive normalization")
	}
	if !items[1].IsActive {
		t.Error("absent isActive should default to true")
	}
	if items[1].DisplayOrder != 2 {
		t.Errorf("camelCase row mangled: %+v", items[1])
	}
}

func TestListAcceptsBareArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/suppliers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Id":"s1","Name":"Acme"}]`))
	})
	repo := NewSuppliers(catalogServer(t, mux))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "s1" {
		t.Fatalf("bare array not handled: %+v", items)
	}
}

func TestGetMapsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dishes/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	repo := NewDishes(catalogServer(t, mux))

	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 should map to ErrNotFound, got %v", err)
	}
}

func TestGetNormalizesSingleRecord(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tenants/t1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Name":"Bistro","Hostname":"bistro.restx.app","IsActive":false}`))
	})
	repo := NewTenants(catalogServer(t, mux))

	got, err := repo.Get(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "" {
		t.Errorf("overview DTO has no id, repo must not invent one: %+v", got)
	}
	if got.Hostname != "bistro.restx.app" || got.IsActive {
		t.Errorf("record not normalized: %+v", got)
	}
}
