package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

// ReplyRepository manages replies to contacts.
type ReplyRepository interface {
	Create(ctx context.Context, reply *domain.Reply) error
	Update(ctx context.Context, reply *domain.Reply) error
	GetByID(ctx context.Context, id string) (*domain.Reply, error)
	ListByContact(ctx context.Context, contactID string) ([]domain.Reply, error)
	Delete(ctx context.Context, id string) error
	// CommitSent stores reply as sent and marks its contact replied in one
	// transaction. A reply without ID is inserted, otherwise the draft is promoted.
	CommitSent(ctx context.Context, reply *domain.Reply) error
}

type replyRepository struct {
	pool *pgxpool.Pool
}

// NewReplyRepository builds repository.
func NewReplyRepository(pool *pgxpool.Pool) ReplyRepository {
	return &replyRepository{pool: pool}
}

const replyColumns = `id, contact_id, subject, message, status, sent_at, created_at, updated_at`

// dbtx is the subset shared by the pool and a transaction.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *replyRepository) Create(ctx context.Context, reply *domain.Reply) error {
	return insertReply(ctx, r.pool, reply)
}

func insertReply(ctx context.Context, db dbtx, reply *domain.Reply) error {
	const query = `
        INSERT INTO replies (contact_id, subject, message, status, sent_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := db.QueryRow(ctx, query,
		reply.ContactID,
		reply.Subject,
		reply.Message,
		reply.Status,
		reply.SentAt,
	).Scan(&reply.ID, &reply.CreatedAt, &reply.UpdatedAt)
	return translate(err)
}

// Update rewrites a draft. Sent replies are never touched.
func (r *replyRepository) Update(ctx context.Context, reply *domain.Reply) error {
	return r.updateDraft(ctx, r.pool, reply)
}

func (r *replyRepository) updateDraft(ctx context.Context, db dbtx, reply *domain.Reply) error {
	const query = `
        UPDATE replies SET subject=$1, message=$2, status=$3, sent_at=$4, updated_at=NOW()
        WHERE id=$5 AND status='draft'
        RETURNING updated_at`
	err := db.QueryRow(ctx, query,
		reply.Subject,
		reply.Message,
		reply.Status,
		reply.SentAt,
		reply.ID,
	).Scan(&reply.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.missingOrSent(ctx, db, reply.ID)
	}
	return translate(err)
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (*domain.Reply, error) {
	query := `SELECT ` + replyColumns + ` FROM replies WHERE id=$1`
	reply, err := scanReply(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return reply, nil
}

func (r *replyRepository) ListByContact(ctx context.Context, contactID string) ([]domain.Reply, error) {
	query := `SELECT ` + replyColumns + ` FROM replies WHERE contact_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Reply
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *reply)
	}
	return result, rows.Err()
}

// Delete removes a draft.
func (r *replyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM replies WHERE id=$1 AND status='draft'`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrSent(ctx, r.pool, id)
	}
	return nil
}

func (r *replyRepository) CommitSent(ctx context.Context, reply *domain.Reply) error {
	inserting := reply.ID == ""
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if inserting {
			if err := insertReply(ctx, tx, reply); err != nil {
				return err
			}
		} else if err := r.updateDraft(ctx, tx, reply); err != nil {
			return err
		}

		const markReplied = `UPDATE contacts SET status='replied', updated_at=NOW() WHERE id=$1`
		cmd, err := tx.Exec(ctx, markReplied, reply.ContactID)
		if err != nil {
			return translate(err)
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil && inserting {
		forgetInsert(reply)
	}
	return err
}

// forgetInsert undoes the fields a rolled back insert wrote into reply.
func forgetInsert(reply *domain.Reply) {
	reply.ID = ""
	reply.CreatedAt = time.Time{}
	reply.UpdatedAt = time.Time{}
}

// missingOrSent tells apart a reply that does not exist from one that is no longer a draft.
func (r *replyRepository) missingOrSent(ctx context.Context, db dbtx, id string) error {
	var status domain.ReplyStatus
	if err := db.QueryRow(ctx, `SELECT status FROM replies WHERE id=$1`, id).Scan(&status); err != nil {
		return translate(err)
	}
	return domain.ErrReplyAlreadySent
}

func scanReply(row pgx.Row) (*domain.Reply, error) {
	var reply domain.Reply
	if err := row.Scan(
		&reply.ID,
		&reply.ContactID,
		&reply.Subject,
		&reply.Message,
		&reply.Status,
		&reply.SentAt,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reply, nil
}
