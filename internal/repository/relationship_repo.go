package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"network-match/internal/domain"
)

// RelationshipRepository devuelve las conexiones (cualquier estado) de un miembro.
type RelationshipRepository interface {
	ListForMember(ctx context.Context, memberID string) ([]domain.RelationshipPair, error)
}

type PgRelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgRelationshipRepository(pool *pgxpool.Pool) *PgRelationshipRepository {
	return &PgRelationshipRepository{pool: pool}
}

func (r *PgRelationshipRepository) ListForMember(ctx context.Context, memberID string) ([]domain.RelationshipPair, error) {
	const query = `
		SELECT requester_id, responder_id, status
		FROM connections
		WHERE requester_id = $1 OR responder_id = $1
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPairs(rows)
}

func scanPairs(rows pgxRows) ([]domain.RelationshipPair, error) {
	var pairs []domain.RelationshipPair
	for rows.Next() {
		var p domain.RelationshipPair
		if err := rows.Scan(&p.MemberA, &p.MemberB, &p.Status); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
