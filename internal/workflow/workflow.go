// Package workflow encodes the reservation status lifecycle: which
// statuses exist, which transitions an operator may request from each
// of them, and the confirmation copy shown before a transition fires.
// The backend owns the actual state changes and their table-side
// effects; this package only ever decides what may be offered, so an
// unreachable target can never be constructed through it.
package workflow

import "github.com/Thaihung204/restx-admin-gateway/internal/model"

// StatusCode is the symbolic name of a reservation status.
type StatusCode string

const (
	StatusPending   StatusCode = "PENDING"
	StatusConfirmed StatusCode = "CONFIRMED"
	StatusCheckedIn StatusCode = "CHECKED_IN"
	StatusCompleted StatusCode = "COMPLETED"
	StatusCancelled StatusCode = "CANCELLED"
)

// Stable wire identifiers for the five statuses. The backend's status
// lookup table assigns these ids and they never change.
const (
	StatusIDPending   = 1
	StatusIDConfirmed = 2
	StatusIDCheckedIn = 3
	StatusIDCompleted = 4
	StatusIDCancelled = 5
)

// Action is one transition an operator may request from the current
// status. Label names the dashboard button, NextStatusID is the target
// sent to the status-update endpoint, and SideEffect is the
// confirmation copy describing what the backend will do to the table.
// SideEffect is documentation for the operator, never verified here.
type Action struct {
	Label        string     `json:"label"`
	NextStatus   StatusCode `json:"nextStatus"`
	NextStatusID int        `json:"nextStatusId"`
	SideEffect   string     `json:"sideEffect"`
}

// statuses is the canonical lookup table, mirroring the backend's
// reservation_statuses rows. ID and Code are a bijection.
var statuses = []model.ReservationStatus{
	{ID: StatusIDPending, Code: string(StatusPending), Name: "Pending", ColorCode: "#f0ad4e"},
	{ID: StatusIDConfirmed, Code: string(StatusConfirmed), Name: "Confirmed", ColorCode: "#5bc0de"},
	{ID: StatusIDCheckedIn, Code: string(StatusCheckedIn), Name: "Checked in", ColorCode: "#0275d8"},
	{ID: StatusIDCompleted, Code: string(StatusCompleted), Name: "Completed", ColorCode: "#5cb85c"},
	{ID: StatusIDCancelled, Code: string(StatusCancelled), Name: "Cancelled", ColorCode: "#d9534f"},
}

// transitions maps each status to the exact set of actions offered for
// it. Terminal statuses map to an empty slice; statuses absent from the
// map are unknown to this build and get no actions at all.
var transitions = map[StatusCode][]Action{
	StatusPending: {
		{Label: "Confirm", NextStatus: StatusConfirmed, NextStatusID: StatusIDConfirmed,
			SideEffect: "The assigned table will be marked Reserved."},
		{Label: "Cancel", NextStatus: StatusCancelled, NextStatusID: StatusIDCancelled,
			SideEffect: "The assigned table will return to Available."},
	},
	StatusConfirmed: {
		{Label: "Check-in", NextStatus: StatusCheckedIn, NextStatusID: StatusIDCheckedIn,
			SideEffect: "The table becomes Occupied and a table session is opened."},
		{Label: "Cancel", NextStatus: StatusCancelled, NextStatusID: StatusIDCancelled,
			SideEffect: "The assigned table will return to Available."},
	},
	StatusCheckedIn: {
		{Label: "Complete", NextStatus: StatusCompleted, NextStatusID: StatusIDCompleted,
			SideEffect: "The table returns to Available and the table session closes."},
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Statuses returns the full status lookup table in id order.
func Statuses() []model.ReservationStatus {
	out := make([]model.ReservationStatus, len(statuses))
	copy(out, statuses)
	return out
}

// StatusByID resolves a wire identifier to its status. The second
// return is false for ids outside the known table.
func StatusByID(id int) (model.ReservationStatus, bool) {
	for _, s := range statuses {
		if s.ID == id {
			return s, true
		}
	}
	return model.ReservationStatus{}, false
}

// StatusByCode resolves a symbolic code to its status.
func StatusByCode(code StatusCode) (model.ReservationStatus, bool) {
	for _, s := range statuses {
		if s.Code == string(code) {
			return s, true
		}
	}
	return model.ReservationStatus{}, false
}

// Actions returns the transitions offered from the given status, in
// display order. Unknown codes get an empty set: the dashboard renders
// such reservations in a neutral state with no buttons rather than
// guessing a default.
func Actions(code StatusCode) []Action {
	acts, ok := transitions[code]
	if !ok {
		return []Action{}
	}
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

// CanTransition reports whether targetID is reachable from the current
// status through one of its offered actions.
func CanTransition(code StatusCode, targetID int) bool {
	for _, a := range transitions[code] {
		if a.NextStatusID == targetID {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
// Unknown codes are not terminal, they are unknown; callers that need
// the distinction should check Known first.
func IsTerminal(code StatusCode) bool {
	acts, ok := transitions[code]
	return ok && len(acts) == 0
}

// Known reports whether the code is one of the five statuses this
// build understands.
func Known(code StatusCode) bool {
	_, ok := transitions[code]
	return ok
}

// QuickCancelAllowed reports whether the delete-style quick cancel is
// offered. It bypasses the status-update endpoint entirely and is only
// legal before the party has been checked in.
func QuickCancelAllowed(code StatusCode) bool {
	return code == StatusPending || code == StatusConfirmed
}
