package orderitem

// QueryOrderItemsModel filters order item queries.
type QueryOrderItemsModel struct {
	Ids      []int64
	OrderIds []int64
	Limit    int
	Offset   int
}
