package payment

import (
	"fmt"
	"strconv"

	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ticket *domain.Ticket,
	bookingSession *domain.Session) (*stripe.CheckoutSession, error) {

	priceCents := ticket.Price.Mul(decimal.NewFromInt(100)).IntPart()

	lineItem := &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(priceCents),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("%s - Seat %d", bookingSession.EventName, ticket.SeatNumber)),
				Description: stripe.String(fmt.Sprintf(
					"Venue: %s • Hall: %s • Starts: %s",
					bookingSession.VenueName,
					bookingSession.HallName,
					bookingSession.StartsAt.Format("Jan 2, 2006 15:04"),
				)),
			},
		},
		Quantity: stripe.Int64(1),
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		Metadata: map[string]string{
			"ticket_id":   strconv.FormatInt(ticket.ID, 10),
			"ticket_code": ticket.Code.String(),
			"user_id":     strconv.FormatInt(ticket.UserID, 10),
		},
		ClientReferenceID: stripe.String(strconv.FormatInt(ticket.UserID, 10)),
	}

	return session.New(params)
}
