package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
)

const ticketColumns = `id, code, session_id, user_id, seat_number, price, status,
		checkout_session_id, created_at, updated_at`

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// Insert creates a RESERVED ticket. The partial unique index over
// (session_id, seat_number) for non-cancelled tickets is the final arbiter of
// occupancy exclusivity; a violation surfaces as domain.ErrSeatTaken.
func (p *PostgresTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (code, session_id, user_id, seat_number, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		ticket.Code,
		ticket.SessionID,
		ticket.UserID,
		ticket.SeatNumber,
		ticket.Price,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatTaken
		}

		return err
	}

	return nil
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	return p.getOne(ctx, query, id)
}

func (p *PostgresTicketRepository) GetByCheckoutSession(
	ctx context.Context,
	checkoutSessionID string) (*domain.Ticket, error) {

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE checkout_session_id = $1`

	return p.getOne(ctx, query, checkoutSessionID)
}

func (p *PostgresTicketRepository) getOne(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.SessionID,
		&ticket.UserID,
		&ticket.SeatNumber,
		&ticket.Price,
		&ticket.Status,
		&ticket.CheckoutSessionID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

// UpdateStatus performs the status transition as a compare-and-swap: the row
// is updated only when its current status is in `from`. When no row changes,
// the ticket is re-read to tell a missing ticket apart from a transition that
// the state graph forbids.
func (p *PostgresTicketRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	from []domain.TicketStatus,
	to domain.TicketStatus) (*domain.Ticket, error) {

	query := `
		UPDATE tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
		RETURNING ` + ticketColumns

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, to, id, statusStrings(from)).Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.SessionID,
		&ticket.UserID,
		&ticket.SeatNumber,
		&ticket.Price,
		&ticket.Status,
		&ticket.CheckoutSessionID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == nil {
		return &ticket, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	_, err = p.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return nil, domain.ErrInvalidTransition
}

func statusStrings(statuses []domain.TicketStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}

func (p *PostgresTicketRepository) SetCheckoutSession(
	ctx context.Context,
	id int64,
	checkoutSessionID string) error {

	query := `
		UPDATE tickets
		SET checkout_session_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := p.db.Exec(ctx, query, checkoutSessionID, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// GetOccupiedSeats returns the seats currently held for a session, meaning
// tickets in RESERVED or PAID. Cancelled and used tickets are never reported.
func (p *PostgresTicketRepository) GetOccupiedSeats(
	ctx context.Context,
	sessionID int64) ([]domain.OccupiedSeat, error) {

	query := `
		SELECT seat_number, id
		FROM tickets
		WHERE session_id = $1 AND status = ANY($2)
		ORDER BY seat_number
	`

	holding := statusStrings([]domain.TicketStatus{domain.TicketStatusReserved, domain.TicketStatusPaid})

	rows, err := p.db.Query(ctx, query, sessionID, holding)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.OccupiedSeat, 0)

	for rows.Next() {
		var seat domain.OccupiedSeat

		err = rows.Scan(&seat.SeatNumber, &seat.TicketID)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// ListByPurchaseWindow returns the tickets purchased in [from, to). Zero
// bounds are open ends. A single SELECT gives the aggregator a
// read-committed snapshot; it never sees a ticket mid-transition.
func (p *PostgresTicketRepository) ListByPurchaseWindow(
	ctx context.Context,
	from, to time.Time) ([]domain.Ticket, error) {

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at
	`

	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}

	rows, err := p.db.Query(ctx, query, fromArg, toArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (p *PostgresTicketRepository) GetTicketsByUserId(
	ctx context.Context,
	userID int64,
	pagination domain.Pagination) ([]domain.Ticket, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	totalRecords := 0

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&totalRecords,
			&ticket.ID,
			&ticket.Code,
			&ticket.SessionID,
			&ticket.UserID,
			&ticket.SeatNumber,
			&ticket.Price,
			&ticket.Status,
			&ticket.CheckoutSessionID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return tickets, metadata, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.Code,
			&ticket.SessionID,
			&ticket.UserID,
			&ticket.SeatNumber,
			&ticket.Price,
			&ticket.Status,
			&ticket.CheckoutSessionID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
