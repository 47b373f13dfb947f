package app

import (
	"fmt"
	"net/http"

	"github.com/mertkaradayi/venue-reservation-system/api"
	"github.com/mertkaradayi/venue-reservation-system/internal/stats"
)

func (app *Application) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	window := stats.WindowAll

	if param := r.URL.Query().Get("window"); param != "" {
		switch stats.Window(param) {
		case stats.WindowAll, stats.WindowDaily, stats.WindowMonthly:
			window = stats.Window(param)
		default:
			app.badRequestResponse(w, r, fmt.Errorf("unknown window %q, expected one of all, daily, monthly", param))
			return
		}
	}

	report, err := app.aggregator.Report(r.Context(), window)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.StatsResponse{
		TotalRevenue:     report.TotalRevenue,
		ReservedRevenue:  report.ReservedRevenue,
		CancelledRevenue: report.CancelledRevenue,
		TotalTickets:     report.TotalTickets,
		ReservedTickets:  report.ReservedTickets,
		PaidTickets:      report.PaidTickets,
		UsedTickets:      report.UsedTickets,
		CancelledTickets: report.CancelledTickets,
		ConversionRate:   report.ConversionRate,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
