package ledger

import (
	"testing"
	"time"
)

func testLead(contactID string, createdAt time.Time) Lead {
	return Lead{
		ContactID: contactID,
		Name:      "Test Person",
		Phone:     "+31612345678",
		Source:    "Website",
		CreatedAt: At(createdAt),
	}
}

func TestAddRejectsDuplicateContactID(t *testing.T) {
	l := Empty()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	if !l.Add(testLead("c-1", now)) {
		t.Fatal("first Add returned false")
	}
	if l.Add(testLead("c-1", now)) {
		t.Fatal("duplicate Add in active returned true")
	}

	if !l.Complete("c-1", now.Add(time.Hour)) {
		t.Fatal("Complete returned false for active lead")
	}
	if l.Add(testLead("c-1", now)) {
		t.Fatal("Add returned true for contact ID already in completed")
	}
}

func TestCompleteMovesLeadExactlyOnce(t *testing.T) {
	l := Empty()
	created := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	completed := created.Add(90 * time.Minute)

	l.Add(testLead("c-1", created))
	l.Add(testLead("c-2", created))

	if !l.Complete("c-1", completed) {
		t.Fatal("Complete returned false for active lead")
	}

	for _, lead := range l.Active {
		if lead.ContactID == "c-1" {
			t.Fatal("completed lead still present in active")
		}
	}
	if len(l.Active) != 1 || l.Active[0].ContactID != "c-2" {
		t.Fatalf("active sequence disturbed: %+v", l.Active)
	}

	if len(l.Completed) != 1 {
		t.Fatalf("completed has %d entries, want 1", len(l.Completed))
	}
	got := l.Completed[0]
	if got.ContactID != "c-1" {
		t.Fatalf("completed entry is %s, want c-1", got.ContactID)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(time.UnixMilli(completed.UnixMilli())) {
		t.Fatalf("CompletedAt = %v, want %v", got.CompletedAt, completed)
	}

	// A second completion is a no-op and must not duplicate the entry.
	if l.Complete("c-1", completed.Add(time.Hour)) {
		t.Fatal("second Complete returned true")
	}
	if len(l.Completed) != 1 {
		t.Fatalf("completed has %d entries after repeat, want 1", len(l.Completed))
	}
}

func TestCompleteUnknownContactIsNoOp(t *testing.T) {
	l := Empty()
	l.Add(testLead("c-1", time.Now()))

	if l.Complete("missing", time.Now()) {
		t.Fatal("Complete returned true for unknown contact")
	}
	if len(l.Active) != 1 || len(l.Completed) != 0 {
		t.Fatalf("ledger mutated by unknown completion: %+v", l)
	}
}

func TestCompletionOrderPreserved(t *testing.T) {
	l := Empty()
	now := time.Now()
	l.Add(testLead("a", now))
	l.Add(testLead("b", now))
	l.Add(testLead("c", now))

	l.Complete("b", now.Add(time.Minute))
	l.Complete("a", now.Add(2*time.Minute))
	l.Complete("c", now.Add(3*time.Minute))

	want := []string{"b", "a", "c"}
	for i, lead := range l.Completed {
		if lead.ContactID != want[i] {
			t.Fatalf("completed order %v, want %v", l.Completed, want)
		}
	}
}

func TestCloneIsolatesMutations(t *testing.T) {
	l := Empty()
	now := time.Now()
	l.Add(testLead("c-1", now))
	l.Complete("c-1", now.Add(time.Minute))

	snapshot := l.Clone()
	l.Add(testLead("c-2", now))
	l.Completed[0].Name = "changed"

	if len(snapshot.Active) != 0 {
		t.Fatalf("snapshot active grew: %+v", snapshot.Active)
	}
	if snapshot.Completed[0].Name != "Test Person" {
		t.Fatalf("snapshot observed mutation: %+v", snapshot.Completed[0])
	}
}
