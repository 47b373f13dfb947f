package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mertkaradayi/venue-reservation-system/api"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookMaxBodyBytes = int64(65536)

// CreateCheckoutSessionHandler starts a Stripe checkout for a reserved
// ticket. The checkout session id is stored on the ticket so the webhook can
// find it back when the payment settles.
func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ticket, err := app.ticketRepo.GetById(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	userID := app.contextGetUserId(r)
	if ticket.UserID != userID {
		app.notFoundResponse(w, r)
		return
	}

	if ticket.Status != domain.TicketStatusReserved {
		app.editConflictResponse(w, r, fmt.Errorf("ticket %d is %s, only reserved tickets can be checked out", ticket.ID, ticket.Status))
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), ticket.SessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(ticket, session)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.ticketRepo.SetCheckoutSession(r.Context(), ticket.ID, checkoutSession.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CheckoutSessionResponse{
		RedirectUrl: checkoutSession.URL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StripeWebhookHandler settles checkouts reported by Stripe. Payment already
// happened on Stripe's side, so every failure after signature verification is
// answered with a non-2xx status to make Stripe redeliver the event.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, webhookMaxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	stripeEvent, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		app.config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logger.Warn("rejected webhook event with bad signature", "error", err)
		app.badRequestResponse(w, r, fmt.Errorf("webhook signature verification failed"))
		return
	}

	if stripeEvent.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var checkoutSession stripe.CheckoutSession
	err = json.Unmarshal(stripeEvent.Data.Raw, &checkoutSession)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	ticket, err := app.ticketRepo.GetByCheckoutSession(r.Context(), checkoutSession.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("webhook for unknown checkout session", "checkout_session_id", checkoutSession.ID)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	paid, err := app.engine.Pay(r.Context(), ticket.ID)
	if err != nil {
		// Stripe retries deliveries, so the ticket may already be paid.
		if errors.Is(err, domain.ErrInvalidTransition) {
			logger.Info("skipping already settled ticket", "ticket_id", ticket.ID, "status", ticket.Status)
			w.WriteHeader(http.StatusOK)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.publishTicketEvent(r, "ticket.paid", paid)

	w.WriteHeader(http.StatusOK)
}
