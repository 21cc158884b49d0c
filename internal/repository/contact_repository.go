package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ContactFilter captures admin inbox search parameters.
type ContactFilter struct {
	Status     *domain.ContactStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]domain.Contact, error)
	Count(ctx context.Context, filter ContactFilter) (int, error)
	UpdateStatus(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.ContactStats, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, name, email, message, status, ip_address, user_agent, created_at, updated_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (name, email, message, status, ip_address, user_agent)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Message,
		contact.Status,
		contact.IPAddress,
		contact.UserAgent,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	return translate(err)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id=$1`
	contact, err := scanContact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return contact, nil
}

// UpdateStatus persists contact.Status. Status only moves forward: when the
// stored row is already further along, nothing is written and contact is
// refreshed from the stored row instead.
func (r *contactRepository) UpdateStatus(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET status=$1, updated_at=NOW()
        WHERE id=$2 AND ` + statusRankStored + ` <= ` + statusRankParam + `
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, contact.Status, contact.ID).Scan(&contact.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		current, getErr := r.GetByID(ctx, contact.ID)
		if getErr != nil {
			return getErr
		}
		*contact = *current
		return nil
	}
	return translate(err)
}

const (
	statusRankStored = `(CASE status WHEN 'new' THEN 0 WHEN 'read' THEN 1 ELSE 2 END)`
	statusRankParam  = `(CASE $1::text WHEN 'new' THEN 0 WHEN 'read' THEN 1 ELSE 2 END)`
)

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Stats(ctx context.Context) (domain.ContactStats, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE status='new'),
            COUNT(*) FILTER (WHERE status='read'),
            COUNT(*) FILTER (WHERE status='replied')
        FROM contacts`
	var stats domain.ContactStats
	err := r.pool.QueryRow(ctx, query).Scan(&stats.New, &stats.Read, &stats.Replied)
	return stats, err
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]domain.Contact, error) {
	where, args := filter.where()

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		contactColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *contact)
	}
	return result, rows.Err()
}

func (r *contactRepository) Count(ctx context.Context, filter ContactFilter) (int, error) {
	where, args := filter.where()
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&total)
	return total, err
}

func (f ContactFilter) where() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if f.Status != nil {
		args = append(args, *f.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.SearchTerm != nil && strings.TrimSpace(*f.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*f.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR LOWER(message) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	return strings.Join(clauses, " AND "), args
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var contact domain.Contact
	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Message,
		&contact.Status,
		&contact.IPAddress,
		&contact.UserAgent,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}
