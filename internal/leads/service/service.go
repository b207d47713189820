// Package service implements lead lifecycle operations and the dashboard
// aggregation on top of the ledger store and the business time engine.
package service

import (
	"context"
	"time"

	"leadboard_backend/internal/businesstime"
	"leadboard_backend/internal/ledger"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/platform/apperr"
	"leadboard_backend/platform/clock"
	"leadboard_backend/platform/phone"
)

// defaultSource labels leads arriving without an origin, matching the
// value the frontend has always displayed.
const defaultSource = "Unknown Source"

// Store is the ledger persistence the service depends on. Load substitutes
// an empty ledger on read failure; Update serializes read-modify-write
// cycles.
type Store interface {
	Load(ctx context.Context) ledger.Ledger
	Update(ctx context.Context, fn func(*ledger.Ledger) error) error
}

// Service handles lead creation, completion and dashboard reporting.
type Service struct {
	store Store
	calc  *businesstime.Calculator
	clock clock.Clock
}

// New creates a lead service.
func New(store Store, calc *businesstime.Calculator, clk clock.Clock) *Service {
	return &Service{store: store, calc: calc, clock: clk}
}

// Create registers a new active lead stamped with the current instant.
// A contact ID already present anywhere in the ledger is a conflict; the
// phone number is normalized to E.164 when it parses.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) error {
	source := defaultSource
	if req.Source != nil && *req.Source != "" {
		source = *req.Source
	}

	lead := ledger.Lead{
		ContactID: req.ContactID,
		Name:      req.Name,
		Phone:     phone.NormalizeE164(req.Phone),
		Source:    source,
		CreatedAt: ledger.At(s.clock.Now()),
	}

	err := s.store.Update(ctx, func(l *ledger.Ledger) error {
		if !l.Add(lead) {
			return apperr.Conflict("lead already exists").WithOp("leads.Create")
		}
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return err
		}
		return apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp("leads.Create")
	}
	return nil
}

// Complete moves a lead from active to completed, stamping the completion
// instant. An unknown contact ID is a silent no-op: the caller cannot
// distinguish it from an already-completed lead, and neither case is an
// error.
func (s *Service) Complete(ctx context.Context, contactID string) error {
	err := s.store.Update(ctx, func(l *ledger.Ledger) error {
		l.Complete(contactID, s.clock.Now())
		return nil
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not save lead", err).WithOp("leads.Complete")
	}
	return nil
}

// Dashboard builds the reporting payload for the current civil day:
// the active leads annotated with waiting time, the average business-minute
// response over today's completions, and the count of leads touched today.
// "Touched today" is asymmetric on purpose: active leads count by creation
// instant, completed leads by completion instant.
func (s *Service) Dashboard(ctx context.Context) transport.DashboardResponse {
	snapshot := s.store.Load(ctx)
	dayBoundary := s.calc.Calendar().DayStart(s.clock.Now())

	active := make([]transport.ActiveLeadResponse, 0, len(snapshot.Active))
	totalToday := 0
	for _, lead := range snapshot.Active {
		waiting := s.calc.MinutesSince(lead.CreatedAt.Time)
		active = append(active, transport.ActiveLeadResponse{
			ContactID:      lead.ContactID,
			Name:           lead.Name,
			Phone:          lead.Phone,
			Source:         lead.Source,
			CreatedAt:      lead.CreatedAt.UnixMilli(),
			WaitingMinutes: waiting,
			Waiting:        s.calc.FormatDuration(waiting),
		})
		if !lead.CreatedAt.Before(dayBoundary) {
			totalToday++
		}
	}

	var pairs [][2]time.Time
	for _, lead := range snapshot.Completed {
		if lead.CompletedAt == nil || lead.CompletedAt.Before(dayBoundary) {
			continue
		}
		totalToday++
		pairs = append(pairs, [2]time.Time{lead.CreatedAt.Time, lead.CompletedAt.Time})
	}

	return transport.DashboardResponse{
		Active:          active,
		AvgResponse:     s.calc.AverageMinutes(pairs),
		TotalLeadsToday: totalToday,
	}
}
