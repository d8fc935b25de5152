package model

import "time"

// ReservationStatus is one entry of the backend's status lookup table.
// The numeric ID is the stable wire identifier used by the status-update
// endpoint, while Code is the stable symbolic name the workflow package
// keys on. ColorCode is a display hint only and carries no semantics.
//
// Fields:
//  ID        – stable wire identifier (1..5 for the known statuses).
//  Code      – symbolic name (PENDING, CONFIRMED, CHECKED_IN, COMPLETED, CANCELLED).
//  Name      – human label shown in the dashboard.
//  ColorCode – badge colour hint.
type ReservationStatus struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode"`
}

// ReservationTable describes one table assigned to a reservation.
type ReservationTable struct {
	Code      string `json:"code"`
	Capacity  int    `json:"capacity"`
	FloorName string `json:"floorName"`
}

// ReservationContact holds the booking customer's contact details.
// Email and MembershipLevel are optional; IsGuest distinguishes
// walk-in style bookings from member accounts.
type ReservationContact struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email,omitempty"`
	IsGuest         bool    `json:"isGuest"`
	MembershipLevel *string `json:"membershipLevel,omitempty"`
}

// Reservation is the full aggregate returned by the detail endpoint.
// Tables is non-empty and ordered as assigned by the backend. The
// deposit pair is passed through as-is: DepositPaid may be true even
// when DepositAmount is zero, the gateway never cross-checks the two.
//
// Fields:
//  ID                  – internal identifier.
//  ConfirmationCode    – opaque code shared with the customer.
//  Tables              – assigned tables, in backend order.
//  ReservationDateTime – booked date and time.
//  NumberOfGuests      – positive guest count.
//  Contact             – customer contact details.
//  SpecialRequests     – optional free text.
//  Status              – current status as reported by the backend.
//  DepositAmount       – non-negative currency amount.
//  DepositPaid         – whether the deposit has been paid.
//  CreatedAt           – creation timestamp.
//  CheckedInAt         – set once the party has been checked in.
type Reservation struct {
	ID                  string             `json:"id"`
	ConfirmationCode    string             `json:"confirmationCode"`
	Tables              []ReservationTable `json:"tables"`
	ReservationDateTime time.Time          `json:"reservationDateTime"`
	NumberOfGuests      int                `json:"numberOfGuests"`
	Contact             ReservationContact `json:"contact"`
	SpecialRequests     string             `json:"specialRequests,omitempty"`
	Status              ReservationStatus  `json:"status"`
	DepositAmount       float64            `json:"depositAmount"`
	DepositPaid         bool               `json:"depositPaid"`
	CreatedAt           time.Time          `json:"createdAt"`
	CheckedInAt         *time.Time         `json:"checkedInAt,omitempty"`
}

// ReservationSummary is the trimmed row shape returned by the list
// endpoint. It carries just enough for the dashboard table plus the
// status needed to derive the offered actions.
type ReservationSummary struct {
	ID                  string            `json:"id"`
	ConfirmationCode    string            `json:"confirmationCode"`
	ContactName         string            `json:"contactName"`
	ContactPhone        string            `json:"contactPhone"`
	TableCodes          []string          `json:"tableCodes"`
	ReservationDateTime time.Time         `json:"reservationDateTime"`
	NumberOfGuests      int               `json:"numberOfGuests"`
	Status              ReservationStatus `json:"status"`
	DepositPaid         bool              `json:"depositPaid"`
}

// ReservationFilter captures the query parameters accepted by the list
// endpoint. Zero values mean "not set" except PageNumber/PageSize which
// the service clamps up to 1.
type ReservationFilter struct {
	PageNumber     int
	PageSize       int
	Search         string // matches contact name, phone or confirmation code
	StatusID       int    // 0 = all statuses
	Date           string // calendar day YYYY-MM-DD, empty = all days
	SortBy         string
	SortDescending bool
}
