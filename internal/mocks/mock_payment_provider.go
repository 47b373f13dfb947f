package mocks

import (
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ticket *domain.Ticket,
	session *domain.Session) (*stripe.CheckoutSession, error) {

	args := m.Called(ticket, session)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}
