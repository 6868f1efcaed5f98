package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"complaint-desk/internal/model"
)

const foreignKeyViolation = "23503"

const complaintColumns = `id, title, description, photo_url, amount, created_on, status, complainer_id`

type PostgresComplaintRepository struct {
	db DBTX
}

func NewComplaintRepository(db DBTX) *PostgresComplaintRepository {
	return &PostgresComplaintRepository{db: db}
}

func (r *PostgresComplaintRepository) Create(ctx context.Context, c *model.Complaint) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO complaints (title, description, photo_url, amount, status, complainer_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_on`,
		c.Title, c.Description, c.PhotoURL, c.Amount, string(c.Status), c.ComplainerID).
		Scan(&c.ID, &c.CreatedOn)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.ErrComplainerMissing
	}
	if err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	c.CreatedOn = c.CreatedOn.UTC()
	return nil
}

func (r *PostgresComplaintRepository) FindByID(ctx context.Context, id int64) (model.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Complaint{}, model.ErrComplaintNotFound
	}
	if err != nil {
		return model.Complaint{}, fmt.Errorf("find complaint: %w", err)
	}
	return c, nil
}

func (r *PostgresComplaintRepository) List(ctx context.Context) ([]model.Complaint, error) {
	rows, err := r.db.Query(ctx, `SELECT `+complaintColumns+` FROM complaints ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return collectComplaints(rows)
}

func (r *PostgresComplaintRepository) ListByComplainer(ctx context.Context, complainerID int64) ([]model.Complaint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE complainer_id = $1 ORDER BY id`, complainerID)
	if err != nil {
		return nil, fmt.Errorf("list complaints by complainer: %w", err)
	}
	return collectComplaints(rows)
}

func (r *PostgresComplaintRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE complaints SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrComplaintNotFound
	}
	return nil
}

func collectComplaints(rows pgx.Rows) ([]model.Complaint, error) {
	defer rows.Close()

	complaints := make([]model.Complaint, 0)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func scanComplaint(row pgx.Row) (model.Complaint, error) {
	var (
		c         model.Complaint
		status    string
		createdOn time.Time
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.PhotoURL, &c.Amount,
		&createdOn, &status, &c.ComplainerID)
	if err != nil {
		return model.Complaint{}, err
	}

	parsed, err := model.ParseStatus(status)
	if err != nil {
		return model.Complaint{}, err
	}
	c.Status = parsed
	c.CreatedOn = createdOn.UTC()
	return c, nil
}
