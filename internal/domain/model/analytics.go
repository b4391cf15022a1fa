package model

// DashboardStats is the summary payload of GET /dashboard.
type DashboardStats struct {
	TotalInvoices         int     `json:"total_invoices"`
	TotalAmount           float64 `json:"total_amount"`
	PaidAmount            float64 `json:"paid_amount"`
	PendingCount          int     `json:"pending_count"`
	PaymentSubmittedCount int     `json:"payment_submitted_count"`
}

// MonthlyTrend is one point of the monthly invoice series.
type MonthlyTrend struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Analytics is the aggregate payload of GET /analytics.
type Analytics struct {
	StatusBreakdown   map[InvoiceStatus]int `json:"status_breakdown"`
	CurrencyBreakdown map[Currency]float64  `json:"currency_breakdown"`
	MonthlyTrends     []MonthlyTrend        `json:"monthly_trends"`
}

// Overview combines both aggregate payloads rendered by the dashboard.
type Overview struct {
	Stats     DashboardStats
	Analytics Analytics
}
