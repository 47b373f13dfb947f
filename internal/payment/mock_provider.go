package payment

import (
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	CreateCheckoutSessionFunc func(ticket *domain.Ticket, session *domain.Session) (*stripe.CheckoutSession, error)
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ticket *domain.Ticket,
	session *domain.Session) (*stripe.CheckoutSession, error) {

	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ticket, session)
	}

	return &stripe.CheckoutSession{ID: "cs_test_mock", URL: "https://stripe.test/checkout"}, nil
}
