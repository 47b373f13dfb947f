// Package api defines the request and response payloads of the HTTP surface.
// All payloads are explicit, typed structures; handlers never emit ad hoc
// maps.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticket struct {
	Id         int64           `json:"id"`
	Code       string          `json:"code"`
	SessionId  int64           `json:"sessionId"`
	SeatNumber int             `json:"seatNumber"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type ReserveTicketRequest struct {
	SeatNumber int `json:"seatNumber" validate:"required,min=1"`
}

type TicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type OccupiedSeatsResponse struct {
	SessionId int64 `json:"sessionId"`
	Seats     []int `json:"seats"`
}

type GetUserTicketsParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}

type UserTicketsResponse struct {
	Tickets  []Ticket `json:"tickets"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type StatsResponse struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	ReservedRevenue  decimal.Decimal `json:"reservedRevenue"`
	CancelledRevenue decimal.Decimal `json:"cancelledRevenue"`
	TotalTickets     int             `json:"totalTickets"`
	ReservedTickets  int             `json:"reservedTickets"`
	PaidTickets      int             `json:"paidTickets"`
	UsedTickets      int             `json:"usedTickets"`
	CancelledTickets int             `json:"cancelledTickets"`
	ConversionRate   float64         `json:"conversionRate"`
}

type CheckoutSessionResponse struct {
	RedirectUrl string `json:"redirectUrl"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
}
