package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"complaint-desk/internal/model"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *model.Complaint) error
	FindByID(ctx context.Context, id int64) (model.Complaint, error)
	List(ctx context.Context) ([]model.Complaint, error)
	ListByComplainer(ctx context.Context, complainerID int64) ([]model.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

// Tx exposes the repositories bound to a single transaction.
type Tx interface {
	Users() UserRepository
	Complaints() ComplaintRepository
}

// Store runs fn inside one transaction: committed when fn returns nil,
// rolled back otherwise.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(postgresTx{
			users:      NewUserRepository(tx),
			complaints: NewComplaintRepository(tx),
		})
	})
}

type postgresTx struct {
	users      *PostgresUserRepository
	complaints *PostgresComplaintRepository
}

func (t postgresTx) Users() UserRepository {
	return t.users
}

func (t postgresTx) Complaints() ComplaintRepository {
	return t.complaints
}
