package customerreport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/feastly/order-svc/internal/service/models/report"
	"github.com/feastly/order-svc/internal/transport/http/converters"
	"github.com/feastly/order-svc/internal/transport/http/response"
	"github.com/gorilla/schema"
)

type service interface {
	CustomerSummaries(ctx context.Context, filter report.QueryCustomerSummariesModel) ([]report.CustomerSummary, error)
}

type queryCustomerSummariesRequest struct {
	CustomerIds []int64 `schema:"customerIds,omitempty"`
	Limit       int     `schema:"limit,omitempty"`
	Offset      int     `schema:"offset,omitempty"`
}

func (q *queryCustomerSummariesRequest) ToModel() report.QueryCustomerSummariesModel {
	return report.QueryCustomerSummariesModel{
		CustomerIds: q.CustomerIds,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// CustomerReport handles the reporting query over the relational mirror.
func CustomerReport(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryCustomerSummariesRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request", "error", err)

		return
	}

	summaries, err := service.CustomerSummaries(r.Context(), query.ToModel())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		slog.Error("Error getting customer summaries", "error", err)

		return
	}

	response.Success(w, http.StatusOK, converters.CustomerSummariesToResponse(summaries))
}
