// Package stats derives revenue and occupancy figures from ticket snapshots.
// Everything here is read-only: the reducer works on a slice the ledger
// handed over, so it can run beside any number of writers.
package stats

import (
	"context"
	"time"

	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
)

type Window string

const (
	WindowAll     Window = "all"
	WindowDaily   Window = "daily"
	WindowMonthly Window = "monthly"
)

type Report struct {
	TotalRevenue     decimal.Decimal
	ReservedRevenue  decimal.Decimal
	CancelledRevenue decimal.Decimal
	TotalTickets     int
	ReservedTickets  int
	PaidTickets      int
	UsedTickets      int
	CancelledTickets int
	ConversionRate   float64
}

// TotalRevenue sums the captured ticket prices over the given statuses. The
// price was fixed at reservation time, so later catalog price changes never
// move these figures.
func TotalRevenue(tickets []domain.Ticket, statuses ...domain.TicketStatus) decimal.Decimal {
	total := decimal.Zero

	for _, ticket := range tickets {
		if hasStatus(ticket, statuses) {
			total = total.Add(ticket.Price)
		}
	}

	return total
}

func TicketCount(tickets []domain.Ticket, statuses ...domain.TicketStatus) int {
	count := 0

	for _, ticket := range tickets {
		if hasStatus(ticket, statuses) {
			count++
		}
	}

	return count
}

// ConversionRate is the share of tickets that reached PAID or USED, as a
// percentage. An empty snapshot yields 0.
func ConversionRate(tickets []domain.Ticket) float64 {
	if len(tickets) == 0 {
		return 0
	}

	converted := TicketCount(tickets, domain.TicketStatusPaid, domain.TicketStatusUsed)

	return float64(converted) / float64(len(tickets)) * 100
}

func hasStatus(ticket domain.Ticket, statuses []domain.TicketStatus) bool {
	for _, status := range statuses {
		if ticket.Status == status {
			return true
		}
	}

	return false
}

func BuildReport(tickets []domain.Ticket) *Report {
	return &Report{
		TotalRevenue:     TotalRevenue(tickets, domain.TicketStatusPaid, domain.TicketStatusUsed),
		ReservedRevenue:  TotalRevenue(tickets, domain.TicketStatusReserved),
		CancelledRevenue: TotalRevenue(tickets, domain.TicketStatusCancelled),
		TotalTickets:     len(tickets),
		ReservedTickets:  TicketCount(tickets, domain.TicketStatusReserved),
		PaidTickets:      TicketCount(tickets, domain.TicketStatusPaid),
		UsedTickets:      TicketCount(tickets, domain.TicketStatusUsed),
		CancelledTickets: TicketCount(tickets, domain.TicketStatusCancelled),
		ConversionRate:   ConversionRate(tickets),
	}
}

// Aggregator pulls its own snapshot from the ledger and reduces it.
type Aggregator struct {
	tickets domain.TicketRepository
	now     func() time.Time
}

func NewAggregator(tickets domain.TicketRepository, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}

	return &Aggregator{
		tickets: tickets,
		now:     now,
	}
}

// Report reduces the tickets whose purchase timestamp falls in the window:
// the calendar day or month containing the current instant, or everything.
func (a *Aggregator) Report(ctx context.Context, window Window) (*Report, error) {
	var from, to time.Time

	switch window {
	case WindowDaily:
		from, to = dayBounds(a.now())
	case WindowMonthly:
		from, to = monthBounds(a.now())
	}

	tickets, err := a.tickets.ListByPurchaseWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return BuildReport(tickets), nil
}

func dayBounds(ref time.Time) (time.Time, time.Time) {
	year, month, day := ref.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())

	return from, from.AddDate(0, 0, 1)
}

func monthBounds(ref time.Time) (time.Time, time.Time) {
	year, month, _ := ref.Date()
	from := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())

	return from, from.AddDate(0, 1, 0)
}
