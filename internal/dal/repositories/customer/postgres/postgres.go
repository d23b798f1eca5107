package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/feastly/order-svc/internal/service/models/customer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn GenericConn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var customerColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"address",
	"created_at",
	"updated_at",
}

// FindByEmail returns the customer with the given email, or nil when absent.
func (r *PostgresCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

// FindByPhone returns the customer with the given phone, or nil when absent.
func (r *PostgresCustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.findOne(ctx, sq.Eq{"phone": phone})
}

func (r *PostgresCustomerRepository) findOne(ctx context.Context, where sq.Eq) (*customer.Customer, error) {
	query, args, err := r.sb.
		Select(customerColumns...).
		From("customers").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal CustomerDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.Phone,
		&dal.Address,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return dal.ToModel(), nil
}

// insert creates a new customer row and returns it with the generated id.
func (r *PostgresCustomerRepository) insert(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	now := time.Now()

	query, args, err := r.sb.
		Insert("customers").
		Columns("name", "email", "phone", "address", "created_at", "updated_at").
		Values(c.Name, c.Email, c.Phone, c.Address, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: email %s", customer.ErrConflict, c.Email)
		}

		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return &c, nil
}

// FindOrCreate resolves a submission to one identity: exact email match
// first, then exact phone match, else a new row. Concurrent calls with
// the same new email may race; the email uniqueness constraint is the
// backstop and surfaces as customer.ErrConflict.
func (r *PostgresCustomerRepository) FindOrCreate(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	found, err := r.FindByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}

	if c.Phone != "" {
		found, err = r.FindByPhone(ctx, c.Phone)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}

	return r.insert(ctx, c)
}
