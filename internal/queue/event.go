// Package queue defines the reservation events published to the
// message broker and the audit consumer that records them.
package queue

// StatusChangedEvent is published after the backend has accepted a
// reservation transition (or a quick cancel). Downstream consumers get
// enough context to notify staff or feed analytics without calling
// back into the API.
type StatusChangedEvent struct {
	ReservationID    string   `json:"reservation_id"`
	ConfirmationCode string   `json:"confirmation_code"`
	FromStatus       string   `json:"from_status"`
	ToStatus         string   `json:"to_status"`
	ToStatusID       int      `json:"to_status_id"`
	QuickCancel      bool     `json:"quick_cancel"`
	TableCodes       []string `json:"tables"`
	ChangedAt        string   `json:"changed_at"`
}
