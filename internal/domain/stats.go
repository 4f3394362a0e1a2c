package domain

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Totals   StatsTotals             `json:"totals"`
	ByStatus map[BookingStatus]int64 `json:"by_status"`
	TopJets  []JetUsage              `json:"top_jets"`
	Monthly  []MonthlyCount          `json:"monthly"`
}

type StatsTotals struct {
	Users        int64 `json:"users"`
	Jets         int64 `json:"jets"`
	Bookings     int64 `json:"bookings"`
	RevenueTotal int64 `json:"revenue_total"`
	RevenueMonth int64 `json:"revenue_month"`
}

// JetUsage aggregates completed flight hours and revenue for one jet.
type JetUsage struct {
	JetID    string      `json:"jet_id"`
	Name     string      `json:"name"`
	Category JetCategory `json:"category"`
	Hours    float64     `json:"hours"`
	Revenue  int64       `json:"revenue"`
}

type MonthlyCount struct {
	Year  int   `json:"y"`
	Month int   `json:"m"`
	Count int64 `json:"count"`
}
