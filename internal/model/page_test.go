package model

import "testing"

func TestPaginationMath(t *testing.T) {
	// 23 rows at 10 per page -> 3 pages.
	cases := []struct {
		page    int
		hasNext bool
		hasPrev bool
	}{
		{1, true, false},
		{2, true, true},
		{3, false, true},
	}
	for _, tc := range cases {
		p := NewPagination(23, tc.page, 10)
		if p.TotalPages != 3 {
			t.Fatalf("page %d: TotalPages = %d, want 3", tc.page, p.TotalPages)
		}
		if p.HasNextPage != tc.hasNext {
			t.Errorf("page %d: HasNextPage = %v, want %v", tc.page, p.HasNextPage, tc.hasNext)
		}
		if p.HasPreviousPage != tc.hasPrev {
			t.Errorf("page %d: HasPreviousPage = %v, want %v", tc.page, p.HasPreviousPage, tc.hasPrev)
		}
	}
}

func TestPaginationEdges(t *testing.T) {
	if p := NewPagination(0, 1, 10); p.TotalPages != 0 || p.HasNextPage || p.HasPreviousPage {
		t.Errorf("empty result: %+v", p)
	}
	if p := NewPagination(10, 1, 10); p.TotalPages != 1 || p.HasNextPage {
		t.Errorf("exact fit: %+v", p)
	}
	// Clamping keeps the arithmetic defined.
	if p := NewPagination(5, 0, 0); p.PageNumber != 1 || p.PageSize != 1 {
		t.Errorf("clamping failed: %+v", p)
	}
}

func TestNewPageNeverNil(t *testing.T) {
	p := NewPage[ReservationSummary](nil, NewPagination(0, 1, 10))
	if p.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}
