package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertkaradayi/venue-reservation-system/internal/domain"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id int64) (*domain.Session, error) {
	query := `
		SELECT id, venue_name, hall_name, event_name, starts_at, ends_at,
			capacity, base_price, active, created_at
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.VenueName,
		&session.HallName,
		&session.EventName,
		&session.StartsAt,
		&session.EndsAt,
		&session.Capacity,
		&session.BasePrice,
		&session.Active,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &session, nil
}
