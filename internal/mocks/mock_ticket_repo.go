package mocks

import (
	"context"
	"time"

	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) Insert(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) GetById(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetByCheckoutSession(ctx context.Context, checkoutSessionID string) (*domain.Ticket, error) {
	args := m.Called(ctx, checkoutSessionID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) UpdateStatus(
	ctx context.Context,
	id int64,
	from []domain.TicketStatus,
	to domain.TicketStatus) (*domain.Ticket, error) {

	args := m.Called(ctx, id, from, to)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) SetCheckoutSession(ctx context.Context, id int64, checkoutSessionID string) error {
	args := m.Called(ctx, id, checkoutSessionID)
	return args.Error(0)
}

func (m *MockTicketRepo) GetOccupiedSeats(ctx context.Context, sessionID int64) ([]domain.OccupiedSeat, error) {
	args := m.Called(ctx, sessionID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.OccupiedSeat), args.Error(1)
}

func (m *MockTicketRepo) ListByPurchaseWindow(ctx context.Context, from, to time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, from, to)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetTicketsByUserId(
	ctx context.Context,
	userID int64,
	pagination domain.Pagination) ([]domain.Ticket, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)

	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Ticket), args.Get(1).(*domain.Metadata), args.Error(2)
}
