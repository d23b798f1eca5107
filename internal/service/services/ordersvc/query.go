package ordersvc

import (
	"context"

	"github.com/feastly/order-svc/internal/service/models/order"
	"github.com/feastly/order-svc/internal/service/models/orderitem"
	"github.com/feastly/order-svc/internal/service/models/report"
)

// GetOrder returns the primary order record.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return s.docs.FindByID(ctx, id)
}

// GetOrders retrieves relational orders with their items based on filter.
// Header and items are two queries composed here, not one transaction:
// orders are append-mostly after creation.
func (s *OrderService) GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.SQLOrderID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].SQLOrderID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

func (s *OrderService) relationalByDocID(ctx context.Context, docID string) (*order.Order, error) {
	orders, err := s.GetOrders(ctx, order.QueryOrdersModel{
		DocIds: []string{docID},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	return &orders[0], nil
}

// CustomerSummaries runs the reporting join over the relational mirror.
func (s *OrderService) CustomerSummaries(ctx context.Context, filter report.QueryCustomerSummariesModel) ([]report.CustomerSummary, error) {
	return s.reports.CustomerSummaries(ctx, &filter)
}
