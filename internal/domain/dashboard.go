package domain

// DashboardStats is the summary card data.
type DashboardStats struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalSales       int     `json:"totalSales"`
	TotalRevenue     float64 `json:"totalRevenue"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// SalesPoint is one day of the sales chart series.
type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// RecentSale is one row of the recent sales table.
type RecentSale struct {
	ID          int     `json:"id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
	SaleDate    string  `json:"sale_date"`
}
