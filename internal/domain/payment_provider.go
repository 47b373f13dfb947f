package domain

import "github.com/stripe/stripe-go/v82"

type PaymentProvider interface {
	CreateCheckoutSession(ticket *Ticket, session *Session) (*stripe.CheckoutSession, error)
}
