package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"network-match/internal/domain"
)

// MemberFilter restringe el pool de candidatos.
type MemberFilter struct {
	Roles    []domain.Role
	Statuses []string
}

// DefaultStatuses son los estados que cuentan como miembros visibles.
var DefaultStatuses = []string{"approved", "active"}

// MemberRepository define el contrato de lectura de miembros.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	ListExcept(ctx context.Context, subjectID string, filter MemberFilter) ([]domain.Member, error)
}

// PgMemberRepository implementa MemberRepository usando pgxpool.
type PgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

var memberColumns = []string{
	"id",
	"name",
	"role",
	"status",
	"COALESCE(branch, '')",
	"COALESCE(cohort, '')",
	"year_of_passing",
	"COALESCE(skills, '{}')",
	"COALESCE(headline, '')",
	"COALESCE(bio, '')",
	"COALESCE(linkedin_url, '')",
	"COALESCE(github_url, '')",
	"created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *PgMemberRepository) GetByID(ctx context.Context, id string) (domain.Member, error) {
	query, args, err := psql.Select(memberColumns...).
		From("members").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Member{}, err
	}

	// pgx.ErrNoRows se propaga tal cual; el servicio lo traduce.
	return scanMember(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgMemberRepository) ListExcept(ctx context.Context, subjectID string, filter MemberFilter) ([]domain.Member, error) {
	query, args, err := buildListExceptQuery(subjectID, filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func buildListExceptQuery(subjectID string, filter MemberFilter) (string, []interface{}, error) {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = DefaultStatuses
	}

	q := psql.Select(memberColumns...).
		From("members").
		Where(sq.NotEq{"id": subjectID}).
		Where(sq.Eq{"status": statuses}).
		OrderBy("id")

	if len(filter.Roles) > 0 {
		roles := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			roles = append(roles, string(role))
		}
		q = q.Where(sq.Eq{"role": roles})
	}
	return q.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (domain.Member, error) {
	var (
		m        domain.Member
		role     string
		linkedin string
		github   string
	)
	err := row.Scan(
		&m.ID,
		&m.Name,
		&role,
		&m.Status,
		&m.Affiliation,
		&m.Cohort,
		&m.GraduationYear,
		&m.Skills,
		&m.Headline,
		&m.Bio,
		&linkedin,
		&github,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	m.Role = domain.Role(role)
	for _, link := range []string{linkedin, github} {
		if link != "" {
			m.ExternalLinks = append(m.ExternalLinks, link)
		}
	}
	return m, nil
}
