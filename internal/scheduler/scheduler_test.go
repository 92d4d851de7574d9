package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propdesk/propdesk/internal/core/warranty"
)

type fakeWarrantyStore struct {
	warranties []*warranty.Warranty
	updates    map[uuid.UUID]string
}

func (f *fakeWarrantyStore) ListEverything(ctx context.Context) ([]*warranty.Warranty, error) {
	return f.warranties, nil
}

func (f *fakeWarrantyStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if f.updates == nil {
		f.updates = make(map[uuid.UUID]string)
	}
	f.updates[id] = status
	return nil
}

func TestSweepWarranties(t *testing.T) {
	now := time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)

	stale := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now.AddDate(-2, 0, 0),
		EndDate:   now.AddDate(0, 0, -3),
		Status:    "active",
	}
	fresh := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now.AddDate(-1, 0, 0),
		EndDate:   now.AddDate(1, 0, 0),
		Status:    "active",
	}
	soon := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now.AddDate(-1, 0, 0),
		EndDate:   now.AddDate(0, 0, 5),
		Status:    "active",
	}
	broken := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now,
		EndDate:   now.AddDate(0, 0, -30),
		Status:    "active",
	}

	store := &fakeWarrantyStore{warranties: []*warranty.Warranty{stale, fresh, soon, broken}}
	s := NewScheduler(store, zap.NewNop())
	s.Now = func() time.Time { return now }

	if err := s.SweepWarranties(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.updates[stale.ID]; got != "expired" {
		t.Errorf("stale warranty updated to %q, want expired", got)
	}
	if got := store.updates[soon.ID]; got != "expiring_soon" {
		t.Errorf("soon warranty updated to %q, want expiring_soon", got)
	}
	if _, ok := store.updates[fresh.ID]; ok {
		t.Error("warranty whose label already matches must not be rewritten")
	}
	if _, ok := store.updates[broken.ID]; ok {
		t.Error("warranty with inconsistent dates must be skipped, not updated")
	}
}

func TestSweepWarranties_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)
	w := &warranty.Warranty{
		ID:        uuid.New(),
		StartDate: now.AddDate(-2, 0, 0),
		EndDate:   now.AddDate(0, 0, -1),
		Status:    "active",
	}

	store := &fakeWarrantyStore{warranties: []*warranty.Warranty{w}}
	s := NewScheduler(store, zap.NewNop())
	s.Now = func() time.Time { return now }

	if err := s.SweepWarranties(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Apply the persisted label, then sweep again
	w.Status = store.updates[w.ID]
	store.updates = nil

	if err := s.SweepWarranties(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updates) != 0 {
		t.Errorf("second sweep wrote %d updates, want 0", len(store.updates))
	}
}

func TestParseDailyRunTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"02:00", "0 2 * * *", false},
		{"23:59", "59 23 * * *", false},
		{"00:00", "0 0 * * *", false},
		{"24:00", "", true},
		{"02:60", "", true},
		{"2am", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := parseDailyRunTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDailyRunTime(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDailyRunTime(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDailyRunTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
