package service

import (
	"context"
	"testing"
	"time"

	"leadboard_backend/internal/businesstime"
	"leadboard_backend/internal/ledger"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/platform/apperr"
	"leadboard_backend/platform/clock"
)

type calendarConfig struct {
	loc     *time.Location
	start   int
	end     int
	weekend []time.Weekday
}

func (c calendarConfig) GetBusinessLocation() *time.Location { return c.loc }
func (c calendarConfig) GetBusinessStartHour() int           { return c.start }
func (c calendarConfig) GetBusinessEndHour() int             { return c.end }
func (c calendarConfig) GetWeekendDays() []time.Weekday      { return c.weekend }

// memStore is an in-memory Store for tests, applying the same
// copy-on-read and all-or-nothing update semantics as the file store.
type memStore struct {
	l ledger.Ledger
}

func newMemStore() *memStore {
	return &memStore{l: ledger.Empty()}
}

func (m *memStore) Load(ctx context.Context) ledger.Ledger {
	return m.l.Clone()
}

func (m *memStore) Update(ctx context.Context, fn func(*ledger.Ledger) error) error {
	l := m.l.Clone()
	if err := fn(&l); err != nil {
		return err
	}
	m.l = l
	return nil
}

func newTestService(t *testing.T, now time.Time) (*Service, *memStore) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cal := businesstime.NewCalendar(calendarConfig{
		loc: loc, start: 8, end: 17,
		weekend: []time.Weekday{time.Saturday, time.Sunday},
	})
	clk := clock.Fixed{Instant: now}
	store := newMemStore()
	return New(store, businesstime.NewCalculator(cal, clk), clk), store
}

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func strPtr(s string) *string { return &s }

func TestCreateStampsAndNormalizes(t *testing.T) {
	loc := amsterdam(t)
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, loc)
	svc, store := newTestService(t, now)
	ctx := context.Background()

	err := svc.Create(ctx, transport.CreateLeadRequest{
		ContactID: "c-1",
		Name:      "Jan de Vries",
		Phone:     "06 12 34 56 78",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(store.l.Active) != 1 {
		t.Fatalf("active has %d leads, want 1", len(store.l.Active))
	}
	lead := store.l.Active[0]
	if lead.Source != "Unknown Source" {
		t.Fatalf("source = %q, want default", lead.Source)
	}
	if lead.Phone != "+31612345678" {
		t.Fatalf("phone = %q, want E.164 normalized", lead.Phone)
	}
	if lead.CreatedAt.UnixMilli() != now.UnixMilli() {
		t.Fatalf("created_at = %d, want clock instant %d", lead.CreatedAt.UnixMilli(), now.UnixMilli())
	}
}

func TestCreateKeepsExplicitSource(t *testing.T) {
	svc, store := newTestService(t, time.Now())

	err := svc.Create(context.Background(), transport.CreateLeadRequest{
		ContactID: "c-1",
		Name:      "Jan",
		Phone:     "0612345678",
		Source:    strPtr("Facebook Ads"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if store.l.Active[0].Source != "Facebook Ads" {
		t.Fatalf("source = %q, want Facebook Ads", store.l.Active[0].Source)
	}
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	ctx := context.Background()

	req := transport.CreateLeadRequest{ContactID: "c-1", Name: "Jan", Phone: "0612345678"}
	if err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := svc.Create(ctx, req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate Create error = %v, want conflict", err)
	}
}

func TestCompleteUnknownIsSilentNoOp(t *testing.T) {
	svc, store := newTestService(t, time.Now())

	if err := svc.Complete(context.Background(), "missing"); err != nil {
		t.Fatalf("Complete unknown: %v", err)
	}
	if len(store.l.Completed) != 0 {
		t.Fatalf("completed grew on unknown id: %+v", store.l.Completed)
	}
}

func TestDashboardAggregation(t *testing.T) {
	loc := amsterdam(t)
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, loc) // Monday
	svc, store := newTestService(t, now)
	ctx := context.Background()

	friday := time.Date(2024, 6, 7, 16, 30, 0, 0, loc)
	todayNine := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)

	// Two active leads: one from Friday evening, one from this morning.
	store.l.Add(ledger.Lead{ContactID: "a-fri", Name: "Old", Phone: "1", Source: "Web", CreatedAt: ledger.At(friday)})
	store.l.Add(ledger.Lead{ContactID: "a-today", Name: "New", Phone: "2", Source: "Web", CreatedAt: ledger.At(todayNine)})

	// Two completions today: 10 and 15 business minutes.
	store.l.Add(ledger.Lead{ContactID: "c-10", Name: "Ten", Phone: "3", Source: "Web", CreatedAt: ledger.At(todayNine)})
	store.l.Complete("c-10", todayNine.Add(10*time.Minute))
	store.l.Add(ledger.Lead{ContactID: "c-15", Name: "Fifteen", Phone: "4", Source: "Web", CreatedAt: ledger.At(todayNine)})
	store.l.Complete("c-15", todayNine.Add(15*time.Minute))

	// One completion last Friday: outside the reporting day.
	store.l.Add(ledger.Lead{ContactID: "c-old", Name: "Past", Phone: "5", Source: "Web", CreatedAt: ledger.At(friday.Add(-time.Hour))})
	store.l.Complete("c-old", friday)

	got := svc.Dashboard(ctx)

	// Active by creation, completed by completion: a-today + c-10 + c-15.
	if got.TotalLeadsToday != 3 {
		t.Fatalf("TotalLeadsToday = %d, want 3", got.TotalLeadsToday)
	}
	// Mean of 10 and 15 rounds half up to 13.
	if got.AvgResponse != 13 {
		t.Fatalf("AvgResponse = %d, want 13", got.AvgResponse)
	}

	if len(got.Active) != 2 {
		t.Fatalf("active has %d entries, want 2", len(got.Active))
	}
	// Friday 16:30 lead: 30 minutes Friday + 120 this morning.
	if got.Active[0].WaitingMinutes != 150 {
		t.Fatalf("friday lead waiting = %d, want 150", got.Active[0].WaitingMinutes)
	}
	if got.Active[0].Waiting != "2h 30m" {
		t.Fatalf("friday lead label = %q, want \"2h 30m\"", got.Active[0].Waiting)
	}
	// This morning's lead: 09:00 to 10:00.
	if got.Active[1].WaitingMinutes != 60 {
		t.Fatalf("today lead waiting = %d, want 60", got.Active[1].WaitingMinutes)
	}
	if got.Active[1].Waiting != "1h" {
		t.Fatalf("today lead label = %q, want \"1h\"", got.Active[1].Waiting)
	}
}
