package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/feastly/order-svc/internal/service/models/report"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CustomerSummaryDal represents the reporting row as read from Postgres.
type CustomerSummaryDal struct {
	CustomerId      int64      `db:"customer_id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	OrderCount      int64      `db:"order_count"`
	TotalSpentCents int64      `db:"total_spent_cents"`
	LastOrderAt     *time.Time `db:"last_order_at"`
}

// ToModel converts CustomerSummaryDal to service layer CustomerSummary model.
func (d *CustomerSummaryDal) ToModel() *report.CustomerSummary {
	return &report.CustomerSummary{
		CustomerID:      d.CustomerId,
		Name:            d.Name,
		Email:           d.Email,
		OrderCount:      d.OrderCount,
		TotalSpentCents: d.TotalSpentCents,
		LastOrderAt:     d.LastOrderAt,
	}
}

// PostgresReportRepository runs reporting reads over the relational mirror.
type PostgresReportRepository struct {
	db *sqlx.DB
}

// NewPostgresReportRepository creates a new Postgres report repository.
func NewPostgresReportRepository(db *sqlx.DB) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

// CustomerSummaries joins customers with their order history.
func (r *PostgresReportRepository) CustomerSummaries(
	ctx context.Context,
	filter *report.QueryCustomerSummariesModel,
) ([]report.CustomerSummary, error) {
	sqlBuilder := strings.Builder{}
	sqlBuilder.WriteString(`
		SELECT
			c.id AS customer_id,
			c.name,
			c.email,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(o.total_cents), 0) AS total_spent_cents,
			MAX(o.created_at) AS last_order_at
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
	`)

	args := []interface{}{}
	argIndex := 1

	if len(filter.CustomerIds) > 0 {
		sqlBuilder.WriteString(fmt.Sprintf(" WHERE c.id = ANY($%d)", argIndex))
		args = append(args, pq.Array(filter.CustomerIds))
		argIndex++
	}

	sqlBuilder.WriteString(" GROUP BY c.id, c.name, c.email ORDER BY total_spent_cents DESC")

	if filter.Limit > 0 {
		sqlBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		sqlBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argIndex))
		args = append(args, filter.Offset)
	}

	var dals []CustomerSummaryDal
	if err := r.db.SelectContext(ctx, &dals, sqlBuilder.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to query customer summaries: %w", err)
	}

	result := make([]report.CustomerSummary, len(dals))
	for i := range dals {
		result[i] = *dals[i].ToModel()
	}

	return result, nil
}
