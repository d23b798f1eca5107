package ireportrepo

import (
	"context"

	"github.com/feastly/order-svc/internal/service/models/report"
)

// IReportRepository defines the reporting reads over the relational mirror.
type IReportRepository interface {
	// CustomerSummaries joins customers with their order history.
	CustomerSummaries(ctx context.Context, filter *report.QueryCustomerSummariesModel) ([]report.CustomerSummary, error)
}
