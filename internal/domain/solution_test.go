package domain

import "testing"

func TestNewErrorSolution(t *testing.T) {
	sol := NewErrorSolution("depot missing", []string{"d1", "d2"})

	if sol.Status != StatusError {
		t.Errorf("Status = %s, want %s", sol.Status, StatusError)
	}
	if len(sol.UnassignedDeliveryIDs) != 2 {
		t.Errorf("expected 2 unassigned deliveries carried through, got %d", len(sol.UnassignedDeliveryIDs))
	}
	if sol.Statistics["error"] != "depot missing" {
		t.Errorf("Statistics[error] = %v, want %q", sol.Statistics["error"], "depot missing")
	}
}
