// Package event publishes ticket lifecycle events to a Redis stream so
// downstream consumers (notifications, analytics) can follow bookings without
// reading the ledger. Publishing is best effort and happens strictly after
// the ledger commit.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	StreamKey = "tickets:events"

	// Keep the stream bounded; consumers that lag this far behind are on
	// their own.
	streamMaxLen = 10_000
)

type TicketEvent struct {
	Type       string    `json:"type"`
	TicketID   int64     `json:"ticketId"`
	TicketCode string    `json:"ticketCode"`
	SessionID  int64     `json:"sessionId"`
	UserID     int64     `json:"userId"`
	SeatNumber int       `json:"seatNumber"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func FromTicket(eventType string, ticket *domain.Ticket) TicketEvent {
	return TicketEvent{
		Type:       eventType,
		TicketID:   ticket.ID,
		TicketCode: ticket.Code.String(),
		SessionID:  ticket.SessionID,
		UserID:     ticket.UserID,
		SeatNumber: ticket.SeatNumber,
		Status:     string(ticket.Status),
		OccurredAt: time.Now(),
	}
}

type Publisher interface {
	PublishTicketEvent(ctx context.Context, event TicketEvent) error
}

type RedisStreamPublisher struct {
	client    redis.UniversalClient
	streamKey string
}

func NewRedisStreamPublisher(client redis.UniversalClient) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client:    client,
		streamKey: StreamKey,
	}
}

func (p *RedisStreamPublisher) PublishTicketEvent(ctx context.Context, event TicketEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamKey,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"type":    event.Type,
			"payload": payload,
		},
	}).Err()
}

// NoopPublisher discards events; used when Redis is not configured and in
// handler tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishTicketEvent(context.Context, TicketEvent) error {
	return nil
}
