// Package ledger owns the lead records: the active and completed sequences,
// their invariants, and the flat-file persistence behind them.
package ledger

import (
	"strconv"
	"time"
)

// Millis is an instant that marshals as an epoch-millisecond integer,
// the wire and file format inherited from the original frontend.
type Millis struct {
	time.Time
}

// At wraps an instant, truncated to millisecond resolution.
func At(t time.Time) Millis {
	return Millis{time.UnixMilli(t.UnixMilli())}
}

// MarshalJSON encodes the instant as epoch milliseconds.
func (m Millis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.UnixMilli(), 10), nil
}

// UnmarshalJSON decodes an epoch-millisecond integer.
func (m *Millis) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	m.Time = time.UnixMilli(ms)
	return nil
}

// Lead is one prospective customer under follow-up. Name, phone and source
// are opaque descriptive strings; ContactID is the sole lookup key.
// CompletedAt is nil while the lead is active and immutable once set.
type Lead struct {
	ContactID   string  `json:"contact_id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Source      string  `json:"source"`
	CreatedAt   Millis  `json:"created_at"`
	CompletedAt *Millis `json:"completed_at,omitempty"`
}
