// Package service holds the gateway's application logic: the
// reservation workflow rules sitting between the dashboard and the
// backend, and the catalog services that normalize and reconcile
// entity state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Thaihung204/restx-admin-gateway/internal/model"
	"github.com/Thaihung204/restx-admin-gateway/internal/queue"
	"github.com/Thaihung204/restx-admin-gateway/internal/repository"
	"github.com/Thaihung204/restx-admin-gateway/internal/workflow"
)

// ErrIllegalTransition is returned when a requested target status is
// not reachable from the reservation's current status. The sanctioned
// dashboard UI can never produce this, because it only renders the
// actions this service hands it, so seeing the error means a caller
// constructed a target on its own.
var ErrIllegalTransition = errors.New("transition not allowed from current status")

// ErrQuickCancelNotAllowed is returned when the delete-style cancel is
// requested for a reservation past the cancellable statuses.
var ErrQuickCancelNotAllowed = errors.New("quick cancel is only available for pending or confirmed reservations")

// StatusPublisher pushes reservation events to the broker. Satisfied
// by *queue.Publisher; nil disables publication.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, ev queue.StatusChangedEvent) error
}

// ReservationService enforces the workflow rules around the
// reservation repository: which transitions may be requested, when the
// quick cancel is available, and what the dashboard is offered to
// render for each row.
type ReservationService struct {
	repo repository.ReservationRepo
	pub  StatusPublisher
}

// NewReservationService wires a ReservationService. pub may be nil.
func NewReservationService(repo repository.ReservationRepo, pub StatusPublisher) *ReservationService {
	return &ReservationService{repo: repo, pub: pub}
}

// List returns one page of reservations. Page number and size are
// clamped up to 1. A backend failure is logged and surfaced as an
// empty page so the dashboard's table renders its empty state instead
// of crashing; the operator retries by reloading.
func (s *ReservationService) List(ctx context.Context, f model.ReservationFilter) model.Page[model.ReservationSummary] {
	if f.PageNumber < 1 {
		f.PageNumber = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	page, err := s.repo.List(ctx, f)
	if err != nil {
		log.Printf("reservations: list failed: %v", err)
		return model.NewPage[model.ReservationSummary](nil, model.NewPagination(0, f.PageNumber, f.PageSize))
	}
	return page
}

// Detail returns the full aggregate. Unlike List, failures propagate:
// the detail view must show an explicit could-not-load state, never
// stale data dressed up as current.
func (s *ReservationService) Detail(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty reservation id", repository.ErrNotFound)
	}
	return s.repo.Get(ctx, id)
}

// ReservationActions is what the dashboard renders for one row: the
// legal transitions from the current status plus whether the
// quick-cancel affordance is shown alongside them.
type ReservationActions struct {
	Status      model.ReservationStatus `json:"status"`
	Actions     []workflow.Action       `json:"actions"`
	QuickCancel bool                    `json:"quickCancel"`
}

// ActionsFor derives the offered actions from a status value. Unknown
// status codes produce a neutral descriptor: no actions, no quick
// cancel, the status echoed back as-is.
func ActionsFor(status model.ReservationStatus) ReservationActions {
	code := workflow.StatusCode(status.Code)
	return ReservationActions{
		Status:      status,
		Actions:     workflow.Actions(code),
		QuickCancel: workflow.QuickCancelAllowed(code),
	}
}

// Actions loads a reservation and derives its offered actions.
func (s *ReservationService) Actions(ctx context.Context, id string) (*ReservationActions, error) {
	res, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	acts := ActionsFor(res.Status)
	return &acts, nil
}

// TransitionStatus requests the backend move a reservation to
// statusID. The target must be one of the actions offered for the
// current status; anything else is rejected locally before a request
// is made. Nothing is applied optimistically: on failure the caller's
// state and the backend's state are both unchanged. On success a
// status-changed event is published best-effort.
func (s *ReservationService) TransitionStatus(ctx context.Context, id string, statusID int) error {
	target, ok := workflow.StatusByID(statusID)
	if !ok {
		return fmt.Errorf("%w: unknown status id %d", ErrIllegalTransition, statusID)
	}
	res, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	cur := workflow.StatusCode(res.Status.Code)
	if !workflow.CanTransition(cur, statusID) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, res.Status.Code, target.Code)
	}
	if err := s.repo.UpdateStatus(ctx, id, statusID); err != nil {
		return err
	}
	s.publish(ctx, res, target.Code, statusID, false)
	return nil
}

// QuickCancel deletes a reservation outright. Only PENDING and
// CONFIRMED reservations qualify; the operator-facing confirmation
// step lives in the dashboard, the gate lives here.
func (s *ReservationService) QuickCancel(ctx context.Context, id string) error {
	res, err := s.Detail(ctx, id)
	if err != nil {
		return err
	}
	if !workflow.QuickCancelAllowed(workflow.StatusCode(res.Status.Code)) {
		return fmt.Errorf("%w: status is %s", ErrQuickCancelNotAllowed, res.Status.Code)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, res, string(workflow.StatusCancelled), workflow.StatusIDCancelled, true)
	return nil
}

func (s *ReservationService) publish(ctx context.Context, res *model.Reservation, toCode string, toID int, quick bool) {
	if s.pub == nil {
		return
	}
	codes := make([]string, 0, len(res.Tables))
	for _, t := range res.Tables {
		codes = append(codes, t.Code)
	}
	ev := queue.StatusChangedEvent{
		ReservationID:    res.ID,
		ConfirmationCode: res.ConfirmationCode,
		FromStatus:       res.Status.Code,
		ToStatus:         toCode,
		ToStatusID:       toID,
		QuickCancel:      quick,
		TableCodes:       codes,
		ChangedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.pub.PublishStatusChanged(ctx, ev); err != nil {
		log.Printf("reservations: publish status change for %s failed: %v", res.ID, err)
	}
}
