package workflow

import "testing"

func actionLabels(code StatusCode) []string {
	acts := Actions(code)
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Label
	}
	return out
}

func TestOfferedActionsPerStatus(t *testing.T) {
	cases := []struct {
		code    StatusCode
		labels  []string
		targets []int
	}{
		{StatusPending, []string{"Confirm", "Cancel"}, []int{StatusIDConfirmed, StatusIDCancelled}},
		{StatusConfirmed, []string{"Check-in", "Cancel"}, []int{StatusIDCheckedIn, StatusIDCancelled}},
		{StatusCheckedIn, []string{"Complete"}, []int{StatusIDCompleted}},
		{StatusCompleted, []string{}, []int{}},
		{StatusCancelled, []string{}, []int{}},
	}
	for _, tc := range cases {
		acts := Actions(tc.code)
		if len(acts) != len(tc.labels) {
			t.Fatalf("%s: got %d actions, want %d", tc.code, len(acts), len(tc.labels))
		}
		for i, a := range acts {
			if a.Label != tc.labels[i] {
				t.Errorf("%s action %d: label %q, want %q", tc.code, i, a.Label, tc.labels[i])
			}
			if a.NextStatusID != tc.targets[i] {
				t.Errorf("%s action %d: target %d, want %d", tc.code, i, a.NextStatusID, tc.targets[i])
			}
		}
	}
}

func TestConfirmedOffersCheckInAndCancel(t *testing.T) {
	acts := Actions(StatusConfirmed)
	if len(acts) != 2 {
		t.Fatalf("CONFIRMED should offer exactly two actions, got %d", len(acts))
	}
	if acts[0].Label != "Check-in" || acts[0].NextStatusID != 3 {
		t.Errorf("first action = %q -> %d, want Check-in -> 3", acts[0].Label, acts[0].NextStatusID)
	}
	if acts[1].Label != "Cancel" || acts[1].NextStatusID != 5 {
		t.Errorf("second action = %q -> %d, want Cancel -> 5", acts[1].Label, acts[1].NextStatusID)
	}
	if !QuickCancelAllowed(StatusConfirmed) {
		t.Error("CONFIRMED should offer quick cancel alongside the transitions")
	}
}

func TestTerminalStatusesOfferNothing(t *testing.T) {
	for _, code := range []StatusCode{StatusCompleted, StatusCancelled} {
		if got := Actions(code); len(got) != 0 {
			t.Errorf("%s: expected no actions, got %v", code, actionLabels(code))
		}
		if !IsTerminal(code) {
			t.Errorf("%s should be terminal", code)
		}
	}
}

func TestUnknownStatusIsNeutral(t *testing.T) {
	if got := Actions("ARCHIVED"); len(got) != 0 {
		t.Errorf("unknown status should offer no actions, got %v", got)
	}
	if IsTerminal("ARCHIVED") {
		t.Error("unknown status must not be reported terminal")
	}
	if Known("ARCHIVED") {
		t.Error("ARCHIVED should not be a known status")
	}
	if QuickCancelAllowed("ARCHIVED") {
		t.Error("unknown status must not offer quick cancel")
	}
}

func TestQuickCancelGating(t *testing.T) {
	allowed := map[StatusCode]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCheckedIn: false,
		StatusCompleted: false,
		StatusCancelled: false,
	}
	for code, want := range allowed {
		if got := QuickCancelAllowed(code); got != want {
			t.Errorf("QuickCancelAllowed(%s) = %v, want %v", code, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusIDConfirmed) {
		t.Error("PENDING -> CONFIRMED should be allowed")
	}
	if CanTransition(StatusPending, StatusIDCompleted) {
		t.Error("PENDING -> COMPLETED must not be allowed")
	}
	if CanTransition(StatusCompleted, StatusIDCancelled) {
		t.Error("COMPLETED is terminal")
	}
	if CanTransition("ARCHIVED", StatusIDConfirmed) {
		t.Error("unknown status has no reachable targets")
	}
}

func TestStatusTableBijection(t *testing.T) {
	all := Statuses()
	if len(all) != 5 {
		t.Fatalf("expected 5 statuses, got %d", len(all))
	}
	ids := map[int]bool{}
	codes := map[string]bool{}
	for _, s := range all {
		if ids[s.ID] {
			t.Errorf("duplicate status id %d", s.ID)
		}
		if codes[s.Code] {
			t.Errorf("duplicate status code %s", s.Code)
		}
		ids[s.ID] = true
		codes[s.Code] = true

		byID, ok := StatusByID(s.ID)
		if !ok || byID.Code != s.Code {
			t.Errorf("StatusByID(%d) = %v, want code %s", s.ID, byID, s.Code)
		}
		byCode, ok := StatusByCode(StatusCode(s.Code))
		if !ok || byCode.ID != s.ID {
			t.Errorf("StatusByCode(%s) = %v, want id %d", s.Code, byCode, s.ID)
		}
	}
	if _, ok := StatusByID(99); ok {
		t.Error("StatusByID(99) should not resolve")
	}
}
