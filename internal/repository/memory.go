package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/workflow"
)

// MemoryReservationRepo is an in-memory ReservationRepo. It mirrors
// the backend's observable behaviour closely enough for service and
// handler tests: filtering, sorting, paging, the status-transition
// guard and the quick-cancel guard.
type MemoryReservationRepo struct {
	mu   sync.Mutex
	list []model.Reservation
}

// NewMemoryReservationRepo returns an empty in-memory repo.
func NewMemoryReservationRepo() *MemoryReservationRepo { return &MemoryReservationRepo{} }

// Add seeds a reservation. Intended for test setup.
func (r *MemoryReservationRepo) Add(res model.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, res)
}

func (r *MemoryReservationRepo) List(ctx context.Context, f model.ReservationFilter) (model.Page[model.ReservationSummary], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.Reservation, 0, len(r.list))
	for _, res := range r.list {
		if f.StatusID > 0 && res.Status.ID != f.StatusID {
			continue
		}
		if f.Date != "" && res.ReservationDateTime.Format("2006-01-02") != f.Date {
			continue
		}
		if f.Search != "" && !matchesSearch(res, f.Search) {
			continue
		}
		matched = append(matched, res)
	}

	sortReservations(matched, f.SortBy, f.SortDescending)

	page := f.PageNumber
	size := f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]model.ReservationSummary, 0, end-start)
	for _, res := range matched[start:end] {
		items = append(items, summarize(res))
	}
	return model.NewPage(items, model.NewPagination(len(matched), page, size)), nil
}

func (r *MemoryReservationRepo) Get(ctx context.Context, id string) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.list {
		if r.list[i].ID == id {
			res := r.list[i]
			return &res, nil
		}
	}
	return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
}

// UpdateStatus applies a transition the way the backend would: the
// target must be reachable from the current status or the update is
// rejected with ErrConflict.
func (r *MemoryReservationRepo) UpdateStatus(ctx context.Context, id string, statusID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.list {
		if r.list[i].ID != id {
			continue
		}
		cur := workflow.StatusCode(r.list[i].Status.Code)
		if !workflow.CanTransition(cur, statusID) {
			return fmt.Errorf("%w: cannot move %s to status %d", ErrConflict, cur, statusID)
		}
		next, _ := workflow.StatusByID(statusID)
		r.list[i].Status = next
		if next.Code == string(workflow.StatusCheckedIn) {
			now := nowUTC()
			r.list[i].CheckedInAt = &now
		}
		return nil
	}
	return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
}

// Delete performs the quick cancel. Reservations past CONFIRMED are
// protected, matching the backend's delete rules.
func (r *MemoryReservationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.list {
		if r.list[i].ID != id {
			continue
		}
		if !workflow.QuickCancelAllowed(workflow.StatusCode(r.list[i].Status.Code)) {
			return fmt.Errorf("%w: reservation %s is not cancellable", ErrConflict, id)
		}
		r.list = append(r.list[:i], r.list[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: reservation %s", ErrNotFound, id)
}

func nowUTC() time.Time { return time.Now().UTC() }

func matchesSearch(res model.Reservation, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(res.Contact.Name), term) ||
		strings.Contains(strings.ToLower(res.Contact.Phone), term) ||
		strings.Contains(strings.ToLower(res.ConfirmationCode), term)
}

func sortReservations(list []model.Reservation, by string, desc bool) {
	less := func(a, b model.Reservation) bool {
		switch by {
		case "numberOfGuests":
			return a.NumberOfGuests < b.NumberOfGuests
		case "contactName":
			return a.Contact.Name < b.Contact.Name
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ReservationDateTime.Before(b.ReservationDateTime)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func summarize(res model.Reservation) model.ReservationSummary {
	codes := make([]string, 0, len(res.Tables))
	for _, t := range res.Tables {
		codes = append(codes, t.Code)
	}
	return model.ReservationSummary{
		ID:                  res.ID,
		ConfirmationCode:    res.ConfirmationCode,
		ContactName:         res.Contact.Name,
		ContactPhone:        res.Contact.Phone,
		TableCodes:          codes,
		ReservationDateTime: res.ReservationDateTime,
		NumberOfGuests:      res.NumberOfGuests,
		Status:              res.Status,
		DepositPaid:         res.DepositPaid,
	}
}

// MemoryCrud is an in-memory Crud implementation for the catalog
// entities. idOf extracts a record's id and withID stamps a generated
// one onto records created without it.
type MemoryCrud[T any] struct {
	mu     sync.Mutex
	order  []string
	items  map[string]T
	nextID int
	idOf   func(T) string
	withID func(T, string) T
}

// NewMemoryCrud returns an empty in-memory catalog repo.
func NewMemoryCrud[T any](idOf func(T) string, withID func(T, string) T) *MemoryCrud[T] {
	return &MemoryCrud[T]{items: map[string]T{}, idOf: idOf, withID: withID}
}

func (r *MemoryCrud[T]) List(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MemoryCrud[T]) Get(ctx context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &item, nil
}

func (r *MemoryCrud[T]) Create(ctx context.Context, in T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.idOf(in)
	if id == "" {
		r.nextID++
		id = fmt.Sprintf("m%d", r.nextID)
		in = r.withID(in, id)
	}
	if _, exists := r.items[id]; exists {
		return nil, fmt.Errorf("%w: %s already exists", ErrConflict, id)
	}
	r.items[id] = in
	r.order = append(r.order, id)
	return &in, nil
}

func (r *MemoryCrud[T]) Update(ctx context.Context, id string, in T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	in = r.withID(in, id)
	r.items[id] = in
	return &in, nil
}

func (r *MemoryCrud[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
