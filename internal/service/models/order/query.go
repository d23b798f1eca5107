package order

// QueryOrdersModel filters relational order queries.
type QueryOrdersModel struct {
	Ids         []int64
	DocIds      []string
	CustomerIds []int64
	Limit       int
	Offset      int
}
