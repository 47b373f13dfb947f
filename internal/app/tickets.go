package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mertkaradayi/venue-reservation-system/api"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
	"github.com/mertkaradayi/venue-reservation-system/internal/event"
)

func (app *Application) ReserveTicketHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ReserveTicketRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)

	ticket, err := app.engine.Reserve(r.Context(), sessionID, userID, input.SeatNumber)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotBookable):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, domain.ErrInvalidSeat):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, domain.ErrSeatTaken):
			logger.Warn("reservation conflict", "session_id", sessionID, "seat", input.SeatNumber)
			app.editConflictResponse(w, r, err)
		case errors.Is(err, domain.ErrBusy):
			logger.Warn("session lock contention", "session_id", sessionID)
			app.busyResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.publishTicketEvent(r, "ticket.reserved", ticket)

	resp := api.TicketResponse{
		Ticket: toApiTicket(ticket),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) PayTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.transitionTicket(w, r, app.engine.Pay, "ticket.paid")
	if !ok {
		return
	}

	app.sendConfirmationEmail(r, ticket)

	app.writeTicketResponse(w, r, ticket)
}

func (app *Application) CancelTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.transitionTicket(w, r, app.engine.Cancel, "ticket.cancelled")
	if !ok {
		return
	}

	app.writeTicketResponse(w, r, ticket)
}

func (app *Application) UseTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticket, ok := app.transitionTicket(w, r, app.engine.Use, "ticket.used")
	if !ok {
		return
	}

	app.writeTicketResponse(w, r, ticket)
}

// transitionTicket runs one engine transition and maps its failures onto
// HTTP statuses. It reports whether the caller should continue. Another
// user's ticket reads as missing.
func (app *Application) transitionTicket(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, ticketID int64) (*domain.Ticket, error),
	eventType string) (*domain.Ticket, bool) {

	ticketID, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	owned, err := app.ticketRepo.GetById(r.Context(), ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	if owned.UserID != app.contextGetUserId(r) {
		app.notFoundResponse(w, r)
		return nil, false
	}

	ticket, err := op(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidTransition):
			app.editConflictResponse(w, r, err)
		case errors.Is(err, domain.ErrOutsideUseWindow):
			app.unprocessableEntityResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	app.publishTicketEvent(r, eventType, ticket)

	return ticket, true
}

func (app *Application) writeTicketResponse(w http.ResponseWriter, r *http.Request, ticket *domain.Ticket) {
	resp := api.TicketResponse{
		Ticket: toApiTicket(ticket),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserTicketsHandler(w http.ResponseWriter, r *http.Request) {
	params := api.GetUserTicketsParams{}

	if page := r.URL.Query().Get("page"); page != "" {
		if pageNum, err := strconv.Atoi(page); err == nil {
			params.Page = &pageNum
		}
	}

	if pageSize := r.URL.Query().Get("pageSize"); pageSize != "" {
		if pageSizeNum, err := strconv.Atoi(pageSize); err == nil {
			params.PageSize = &pageSizeNum
		}
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)
	pagination := toPagination(params)

	tickets, metadata, err := app.ticketRepo.GetTicketsByUserId(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	apiTickets := make([]api.Ticket, len(tickets))
	for i := range tickets {
		apiTickets[i] = toApiTicket(&tickets[i])
	}

	resp := api.UserTicketsResponse{
		Tickets:  apiTickets,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPagination(params api.GetUserTicketsParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiTicket(ticket *domain.Ticket) api.Ticket {
	return api.Ticket{
		Id:         ticket.ID,
		Code:       ticket.Code.String(),
		SessionId:  ticket.SessionID,
		SeatNumber: ticket.SeatNumber,
		Price:      ticket.Price,
		Status:     string(ticket.Status),
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
	}
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

// publishTicketEvent emits a lifecycle event after a committed transition.
// Failures are logged and swallowed; the booking itself already succeeded.
func (app *Application) publishTicketEvent(r *http.Request, eventType string, ticket *domain.Ticket) {
	logger := app.contextGetLogger(r)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
	defer cancel()

	err := app.events.PublishTicketEvent(ctx, event.FromTicket(eventType, ticket))
	if err != nil {
		logger.Error("failed to publish ticket event", "type", eventType, "ticket_id", ticket.ID, "error", err)
	}
}

// sendConfirmationEmail mails the payment confirmation in the background,
// when the authentication collaborator put an address in the session.
func (app *Application) sendConfirmationEmail(r *http.Request, ticket *domain.Ticket) {
	recipient := app.sessionManager.GetString(r.Context(), SessionKeyUserEmail.String())
	if recipient == "" {
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), ticket.SessionID)
	if err != nil {
		app.contextGetLogger(r).Error("failed to load session for confirmation email", "error", err)
		return
	}

	logger := app.contextGetLogger(r)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred during sending confirmation mail", "panic", err)
			}
		}()

		data := map[string]any{
			"eventName":  session.EventName,
			"venueName":  session.VenueName,
			"hallName":   session.HallName,
			"startsAt":   session.StartsAt.Format(time.RFC1123),
			"seatNumber": ticket.SeatNumber,
			"ticketCode": ticket.Code.String(),
		}

		err := app.mailer.Send(recipient, "ticket_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send confirmation email", "error", err)
		}
	}()
}
