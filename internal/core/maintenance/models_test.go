package maintenance

import "testing"

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	for _, p := range []Priority{"", "urgent", "LOW"} {
		if p.Valid() {
			t.Errorf("%q should not be valid", p)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("completed and cancelled are terminal")
	}
	if StatusPending.Terminal() || StatusInProgress.Terminal() {
		t.Error("pending and in_progress are not terminal")
	}
}
