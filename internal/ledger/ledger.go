package ledger

import "time"

// Ledger holds the two ordered lead sequences. Active keeps insertion
// order, Completed keeps completion order. A contact ID appears at most
// once across both sequences, and the active → completed transition is
// one-way.
type Ledger struct {
	Active    []Lead `json:"active"`
	Completed []Lead `json:"completed"`
}

// Empty returns a ledger with no leads. It is the recovery value when the
// persisted form cannot be read.
func Empty() Ledger {
	return Ledger{Active: []Lead{}, Completed: []Lead{}}
}

// Contains reports whether a contact ID is present in either sequence.
func (l *Ledger) Contains(contactID string) bool {
	for i := range l.Active {
		if l.Active[i].ContactID == contactID {
			return true
		}
	}
	for i := range l.Completed {
		if l.Completed[i].ContactID == contactID {
			return true
		}
	}
	return false
}

// Add appends a lead to the active sequence. It reports false when the
// contact ID is already present anywhere in the ledger, leaving the
// ledger unchanged.
func (l *Ledger) Add(lead Lead) bool {
	if l.Contains(lead.ContactID) {
		return false
	}
	l.Active = append(l.Active, lead)
	return true
}

// Complete moves the lead with the given contact ID from active to
// completed, stamping the completion instant. An unknown contact ID is a
// no-op (reported as false), never an error: the transition may race with
// an earlier completion through the UI and must stay idempotent.
func (l *Ledger) Complete(contactID string, at time.Time) bool {
	for i := range l.Active {
		if l.Active[i].ContactID != contactID {
			continue
		}
		lead := l.Active[i]
		completed := At(at)
		lead.CompletedAt = &completed
		l.Active = append(l.Active[:i], l.Active[i+1:]...)
		l.Completed = append(l.Completed, lead)
		return true
	}
	return false
}

// Clone returns a deep copy, so a dashboard snapshot can never observe a
// later mutation.
func (l *Ledger) Clone() Ledger {
	out := Ledger{
		Active:    make([]Lead, len(l.Active)),
		Completed: make([]Lead, len(l.Completed)),
	}
	copy(out.Active, l.Active)
	copy(out.Completed, l.Completed)
	for i := range out.Completed {
		if out.Completed[i].CompletedAt != nil {
			completed := *out.Completed[i].CompletedAt
			out.Completed[i].CompletedAt = &completed
		}
	}
	return out
}
