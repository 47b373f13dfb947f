package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/mertkaradayi/venue-reservation-system/api"
	"github.com/mertkaradayi/venue-reservation-system/internal/booking"
	"github.com/mertkaradayi/venue-reservation-system/internal/event"
	"github.com/mertkaradayi/venue-reservation-system/internal/mailer"
	"github.com/mertkaradayi/venue-reservation-system/internal/stats"
	"github.com/mertkaradayi/venue-reservation-system/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		events:         event.NoopPublisher{},
		mailer:         &mailer.MockMailer{},
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.engine == nil && app.sessionRepo != nil && app.ticketRepo != nil {
		app.engine = booking.NewEngine(app.sessionRepo, app.ticketRepo, booking.Config{})
	}
	if app.aggregator == nil && app.ticketRepo != nil {
		app.aggregator = stats.NewAggregator(app.ticketRepo, nil)
	}

	return app
}

// setupTestSession loads a fresh session into the request context and marks
// it authenticated, standing in for the LoadAndSave and authentication
// middleware.
func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int64) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(context.WithValue(ctx, SessionKeyUserId, userId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParams plants chi route parameters on the request, since handlers
// are invoked directly rather than through the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for name, value := range params {
		rctx.URLParams.Add(name, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func ticketURLParam(id int64) map[string]string {
	return map[string]string{"ticketId": fmt.Sprintf("%d", id)}
}

func sessionURLParam(id int64) map[string]string {
	return map[string]string{"sessionId": fmt.Sprintf("%d", id)}
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	if tt.wantErrMessage == "" {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if errorResp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
	}
}

func checkValidationResponse(t *testing.T, w *httptest.ResponseRecorder, wantIssue string) {
	var validationResp api.ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
		t.Fatalf("Failed to decode validation error response: %v", err)
	}

	for _, vErr := range validationResp.ValidationErrors {
		if vErr.Issue == wantIssue {
			return
		}
	}

	t.Errorf("Expected validation error message '%s' not found in response", wantIssue)
}

func ptr[T any](v T) *T {
	return &v
}
