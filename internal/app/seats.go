package app

import (
	"errors"
	"net/http"

	"github.com/mertkaradayi/venue-reservation-system/api"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
)

func (app *Application) GetOccupiedSeatsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.engine.OccupiedSeats(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.OccupiedSeatsResponse{
		SessionId: sessionID,
		Seats:     seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
