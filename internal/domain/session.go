package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Session is a capacity-bounded bookable unit: a screening or a club event.
// The catalog owns sessions; the booking core only reads them.
type Session struct {
	ID        int64
	VenueName string
	HallName  string
	EventName string
	StartsAt  time.Time
	EndsAt    time.Time
	Capacity  int
	BasePrice decimal.Decimal
	Active    bool
	CreatedAt time.Time
}

func (s Session) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

type SessionRepository interface {
	GetById(ctx context.Context, id int64) (*Session, error)
}
