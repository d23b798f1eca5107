package report

import "time"

// CustomerSummary is a reporting row joining a customer with their
// relational order history.
type CustomerSummary struct {
	CustomerID      int64      `json:"customerId"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	OrderCount      int64      `json:"orderCount"`
	TotalSpentCents int64      `json:"totalSpentCents"`
	LastOrderAt     *time.Time `json:"lastOrderAt,omitempty"`
}

// QueryCustomerSummariesModel filters reporting queries.
type QueryCustomerSummariesModel struct {
	CustomerIds []int64
	Limit       int
	Offset      int
}
