package repository

import (
	"context"
	"database/sql"
)

// InquiryRepo handles contact-form submissions.
type InquiryRepo struct {
	db *sql.DB
}

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

func (r *InquiryRepo) Insert(ctx context.Context, q Inquiry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO inquiries(id, name, email, subject, body, created_at)
	VALUES(?, ?, ?, ?, ?, ?);
	`, q.ID, q.Name, q.Email, q.Subject, q.Body, q.CreatedAt.UTC())
	return err
}

// List returns inquiries newest first. limit <= 0 means no limit.
func (r *InquiryRepo) List(ctx context.Context, limit, offset int) ([]Inquiry, error) {
	query := `SELECT id, name, email, subject, body, created_at FROM inquiries ORDER BY created_at DESC, id ASC`
	var args []any
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, max(offset, 0))
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Inquiry
	for rows.Next() {
		var q Inquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Subject, &q.Body, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *InquiryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n)
	return n, err
}

func (r *InquiryRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inquiries`)
	return err
}
