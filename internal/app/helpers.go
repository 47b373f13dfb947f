package app

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mertkaradayi/venue-reservation-system/internal/jsonutil"
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

func (app *Application) readIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidIDParam(name)
	}

	return id, nil
}

type invalidIDParamError struct {
	name string
}

func errInvalidIDParam(name string) error {
	return invalidIDParamError{name: name}
}

func (e invalidIDParamError) Error() string {
	return "invalid " + e.name + " parameter"
}

type loggerContextKey struct{}

// requestLogger scopes the application logger to the request, carrying the
// request id so async work can still be traced back.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			logger = logger.With("request_id", reqID)
		}

		ctx := context.WithValue(r.Context(), loggerContextKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey{}).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
