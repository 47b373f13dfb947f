// Package booking holds the reservation engine: the only writer to the ticket
// ledger. It validates requests against the session catalog, serializes seat
// reservations per session and drives every ticket status transition.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
)

const DefaultLockWait = 5 * time.Second

type Config struct {
	// LockWait bounds how long a reserve call may wait on a contended
	// session before giving up with domain.ErrBusy.
	LockWait time.Duration

	// UseGrace extends the use window past the session's end time. Zero
	// means "derive from the session": a ticket stays usable for one
	// session duration after the session ends.
	UseGrace time.Duration

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

type Engine struct {
	sessions domain.SessionRepository
	tickets  domain.TicketRepository
	locks    *sessionLocker
	lockWait time.Duration
	useGrace time.Duration
	now      func() time.Time
}

func NewEngine(sessions domain.SessionRepository, tickets domain.TicketRepository, cfg Config) *Engine {
	if cfg.LockWait <= 0 {
		cfg.LockWait = DefaultLockWait
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Engine{
		sessions: sessions,
		tickets:  tickets,
		locks:    newSessionLocker(),
		lockWait: cfg.LockWait,
		useGrace: cfg.UseGrace,
		now:      cfg.Now,
	}
}

// Reserve claims a seat for a user and creates a RESERVED ticket priced at
// the session's current base price. The check-and-insert runs under the
// session's lock; the ledger's uniqueness constraint remains the final
// arbiter, so a conflicting insert that slips past the in-memory check still
// comes back as domain.ErrSeatTaken.
func (e *Engine) Reserve(ctx context.Context, sessionID, userID int64, seatNumber int) (*domain.Ticket, error) {
	session, err := e.sessions.GetById(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotBookable
		}

		return nil, err
	}

	if !session.Active {
		return nil, domain.ErrSessionNotBookable
	}

	if seatNumber < 1 || seatNumber > session.Capacity {
		return nil, domain.ErrInvalidSeat
	}

	release, err := e.locks.acquire(ctx, sessionID, e.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	// Fast path: reject before touching the ledger when the seat is
	// visibly held. Used seats are not in this view; the unique index
	// covers them on insert.
	occupied, err := e.tickets.GetOccupiedSeats(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, seat := range occupied {
		if seat.SeatNumber == seatNumber {
			return nil, domain.ErrSeatTaken
		}
	}

	ticket := &domain.Ticket{
		Code:       uuid.New(),
		SessionID:  sessionID,
		UserID:     userID,
		SeatNumber: seatNumber,
		Price:      session.BasePrice,
		Status:     domain.TicketStatusReserved,
	}

	err = e.tickets.Insert(ctx, ticket)
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

// Pay moves a RESERVED ticket to PAID.
func (e *Engine) Pay(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	return e.tickets.UpdateStatus(
		ctx,
		ticketID,
		domain.TransitionSources(domain.TicketStatusPaid),
		domain.TicketStatusPaid,
	)
}

// Cancel moves a RESERVED or PAID ticket to CANCELLED, releasing its seat.
func (e *Engine) Cancel(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	return e.tickets.UpdateStatus(
		ctx,
		ticketID,
		domain.TransitionSources(domain.TicketStatusCancelled),
		domain.TicketStatusCancelled,
	)
}

// Use redeems a PAID ticket at the door. The ticket is only redeemable
// between the session's start and its end plus the grace period.
func (e *Engine) Use(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := e.tickets.GetById(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.Status != domain.TicketStatusPaid {
		return nil, domain.ErrInvalidTransition
	}

	session, err := e.sessions.GetById(ctx, ticket.SessionID)
	if err != nil {
		return nil, err
	}

	grace := e.useGrace
	if grace == 0 {
		grace = session.Duration()
	}

	now := e.now()
	if now.Before(session.StartsAt) || now.After(session.EndsAt.Add(grace)) {
		return nil, domain.ErrOutsideUseWindow
	}

	// The status may have changed since the read above; the CAS rejects
	// the transition in that case.
	return e.tickets.UpdateStatus(
		ctx,
		ticketID,
		[]domain.TicketStatus{domain.TicketStatusPaid},
		domain.TicketStatusUsed,
	)
}

// OccupiedSeats reports the seat numbers currently held for a session,
// computed from the ledger on every call.
func (e *Engine) OccupiedSeats(ctx context.Context, sessionID int64) ([]int, error) {
	_, err := e.sessions.GetById(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	occupied, err := e.tickets.GetOccupiedSeats(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	seats := make([]int, len(occupied))
	for i, seat := range occupied {
		seats[i] = seat.SeatNumber
	}

	return seats, nil
}
