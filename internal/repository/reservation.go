package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/upstream"
)

// ReservationRepo is the data access surface for reservations. The
// production implementation forwards to the backend's reservation
// endpoints; the in-memory one in memory.go backs tests.
type ReservationRepo interface {
	List(ctx context.Context, f model.ReservationFilter) (model.Page[model.ReservationSummary], error)
	Get(ctx context.Context, id string) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, statusID int) error
	Delete(ctx context.Context, id string) error
}

// HTTPReservationRepo calls the backend reservation endpoints. The
// reservation API is newer than the catalog endpoints and emits
// consistent camelCase, so responses decode straight into the models
// without going through the normalization tables.
type HTTPReservationRepo struct {
	client *upstream.Client
}

// NewHTTPReservationRepo returns a repo bound to the given client.
func NewHTTPReservationRepo(c *upstream.Client) *HTTPReservationRepo {
	return &HTTPReservationRepo{client: c}
}

// listResponse is the wire shape of GET /reservations.
type listResponse struct {
	Items      []model.ReservationSummary `json:"items"`
	TotalCount int                        `json:"totalCount"`
}

// List fetches one page of reservations matching the filter.
func (r *HTTPReservationRepo) List(ctx context.Context, f model.ReservationFilter) (model.Page[model.ReservationSummary], error) {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(f.PageNumber))
	q.Set("pageSize", strconv.Itoa(f.PageSize))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.StatusID > 0 {
		q.Set("statusId", strconv.Itoa(f.StatusID))
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
		q.Set("sortDescending", strconv.FormatBool(f.SortDescending))
	}

	var resp listResponse
	if err := r.client.GetJSON(ctx, "/reservations", q, &resp); err != nil {
		return model.Page[model.ReservationSummary]{}, mapUpstreamErr(err)
	}
	return model.NewPage(resp.Items, model.NewPagination(resp.TotalCount, f.PageNumber, f.PageSize)), nil
}

// Get fetches the full aggregate for one reservation.
func (r *HTTPReservationRepo) Get(ctx context.Context, id string) (*model.Reservation, error) {
	b, err := r.client.Get(ctx, "/reservations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, mapUpstreamErr(err)
	}
	var res model.Reservation
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("decode reservation: %w", err)
	}
	return &res, nil
}

// UpdateStatus requests the backend transition to the given status id.
func (r *HTTPReservationRepo) UpdateStatus(ctx context.Context, id string, statusID int) error {
	_, err := r.client.Put(ctx, "/reservations/"+url.PathEscape(id)+"/status",
		map[string]int{"statusId": statusID})
	return mapUpstreamErr(err)
}

// Delete performs the quick-cancel delete.
func (r *HTTPReservationRepo) Delete(ctx context.Context, id string) error {
	return mapUpstreamErr(r.client.Delete(ctx, "/reservations/"+url.PathEscape(id)))
}

// mapUpstreamErr converts backend status errors onto the repository
// sentinels so callers handle HTTP and in-memory repos identically.
func mapUpstreamErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 404:
			return fmt.Errorf("%w: %v", ErrNotFound, apiErr.Message)
		case 403:
			return fmt.Errorf("%w: %v", ErrForbidden, apiErr.Message)
		case 409:
			return fmt.Errorf("%w: %v", ErrConflict, apiErr.Message)
		}
	}
	return err
}
