package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"network-match/internal/domain"
)

// ActivityRepository entrega los conteos crudos de actividad de un miembro.
// Los flags de perfil (headline, bio, links) se derivan del propio Member.
type ActivityRepository interface {
	Counts(ctx context.Context, memberID string) (domain.ActivitySignals, error)
}

type PgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPgActivityRepository(pool *pgxpool.Pool) *PgActivityRepository {
	return &PgActivityRepository{pool: pool}
}

func (r *PgActivityRepository) Counts(ctx context.Context, memberID string) (domain.ActivitySignals, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE author_id = $1),
			(SELECT COUNT(*) FROM connections
				WHERE (requester_id = $1 OR responder_id = $1) AND status = 'accepted')
	`
	var s domain.ActivitySignals
	err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&s.AuthoredContentCount,
		&s.AcceptedRelationshipCount,
	)
	return s, err
}
