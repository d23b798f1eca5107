package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/feastly/order-svc/internal/service/models/currency"
	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id            int64     `db:"id"`
	DocId         string    `db:"doc_id"`
	CustomerId    int64     `db:"customer_id"`
	SubtotalCents int64     `db:"subtotal_cents"`
	DiscountCents int64     `db:"discount_cents"`
	TotalCents    int64     `db:"total_cents"`
	Currency      string    `db:"currency"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(o.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:            o.DocId,
		SQLOrderID:    o.Id,
		CustomerID:    o.CustomerId,
		SubtotalCents: o.SubtotalCents,
		DiscountCents: o.DiscountCents,
		TotalCents:    o.TotalCents,
		Currency:      cur,
		Status:        status,
		PaymentStatus: paymentStatus,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		OrderItems:    []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:            o.SQLOrderID,
		DocId:         o.ID,
		CustomerId:    o.CustomerID,
		SubtotalCents: o.SubtotalCents,
		DiscountCents: o.DiscountCents,
		TotalCents:    o.TotalCents,
		Currency:      o.Currency.String(),
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"doc_id",
	"customer_id",
	"subtotal_cents",
	"discount_cents",
	"total_cents",
	"currency",
	"status",
	"payment_status",
	"created_at",
	"updated_at",
}

// Insert writes the order header and returns the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o *order.Order) (int64, error) {
	dal := OrderDalFromModel(o)

	query, args, err := r.sb.
		Insert("orders").
		Columns(
			"doc_id",
			"customer_id",
			"subtotal_cents",
			"discount_cents",
			"total_cents",
			"currency",
			"status",
			"payment_status",
			"created_at",
			"updated_at",
		).
		Values(
			dal.DocId,
			dal.CustomerId,
			dal.SubtotalCents,
			dal.DiscountCents,
			dal.TotalCents,
			dal.Currency,
			dal.Status,
			dal.PaymentStatus,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	return id, nil
}

// Query retrieves order headers based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.DocIds) > 0 {
		query = query.Where(sq.Eq{"doc_id": filter.DocIds})
	}

	if len(filter.CustomerIds) > 0 {
		query = query.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.DocId,
			&dal.CustomerId,
			&dal.SubtotalCents,
			&dal.DiscountCents,
			&dal.TotalCents,
			&dal.Currency,
			&dal.Status,
			&dal.PaymentStatus,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatusByDocID sets the status of the order mirroring the given
// primary record.
func (r *PostgresOrderRepository) UpdateStatusByDocID(ctx context.Context, docID string, status order.Status) error {
	return r.updateByDocID(ctx, docID, "status", status.String())
}

// UpdatePaymentStatusByDocID sets the payment status of the order
// mirroring the given primary record.
func (r *PostgresOrderRepository) UpdatePaymentStatusByDocID(ctx context.Context, docID string, status order.PaymentStatus) error {
	return r.updateByDocID(ctx, docID, "payment_status", status.String())
}

func (r *PostgresOrderRepository) updateByDocID(ctx context.Context, docID string, column string, value string) error {
	query, args, err := r.sb.
		Update("orders").
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"doc_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}
