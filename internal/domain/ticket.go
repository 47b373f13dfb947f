package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusReserved  TicketStatus = "RESERVED"
	TicketStatusPaid      TicketStatus = "PAID"
	TicketStatusUsed      TicketStatus = "USED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// ticketTransitions is the single source of truth for the ticket state
// graph. Any transition not listed here is rejected.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusReserved: {TicketStatusPaid, TicketStatusCancelled},
	TicketStatusPaid:     {TicketStatusUsed, TicketStatusCancelled},
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// TransitionSources returns every status from which `to` is reachable.
// The repository uses this as the compare set of its status CAS.
func TransitionSources(to TicketStatus) []TicketStatus {
	var sources []TicketStatus

	for from, nexts := range ticketTransitions {
		for _, next := range nexts {
			if next == to {
				sources = append(sources, from)
			}
		}
	}

	return sources
}

func (s TicketStatus) Terminal() bool {
	return s == TicketStatusUsed || s == TicketStatusCancelled
}

// HoldsSeat reports whether a ticket in this status keeps its seat claimed.
// Used tickets still hold the seat; only cancellation releases it.
func (s TicketStatus) HoldsSeat() bool {
	return s != TicketStatusCancelled
}

type Ticket struct {
	ID                int64
	Code              uuid.UUID
	SessionID         int64
	UserID            int64
	SeatNumber        int
	Price             decimal.Decimal
	Status            TicketStatus
	CheckoutSessionID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OccupiedSeat is a derived (session, seat) -> ticket projection entry,
// recomputed from the ledger on every read.
type OccupiedSeat struct {
	SeatNumber int
	TicketID   int64
}

type TicketRepository interface {
	Insert(ctx context.Context, ticket *Ticket) error
	GetById(ctx context.Context, id int64) (*Ticket, error)
	GetByCheckoutSession(ctx context.Context, checkoutSessionID string) (*Ticket, error)
	UpdateStatus(ctx context.Context, id int64, from []TicketStatus, to TicketStatus) (*Ticket, error)
	SetCheckoutSession(ctx context.Context, id int64, checkoutSessionID string) error
	GetOccupiedSeats(ctx context.Context, sessionID int64) ([]OccupiedSeat, error)
	ListByPurchaseWindow(ctx context.Context, from, to time.Time) ([]Ticket, error)
	GetTicketsByUserId(ctx context.Context, userID int64, pagination Pagination) ([]Ticket, *Metadata, error)
}
