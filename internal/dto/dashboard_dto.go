package dto

import "promo-insights-be/internal/entity"

// KPISummary holds the rollups shown above every view. Sums treat null as 0;
// averages are over records with a non-null value only, 0 when none.
type KPISummary struct {
	Count         int     `json:"count"`
	TotalSales    float64 `json:"total_sales"`
	BaselineSales float64 `json:"baseline_sales"`
	TotalProfit   float64 `json:"total_profit"`
	TotalUplift   float64 `json:"total_uplift"`
	AvgROI        float64 `json:"avg_roi"`
}

// TabularResponse is the filtered grid payload.
type TabularResponse struct {
	KPI     KPISummary      `json:"kpi"`
	Total   int             `json:"total"`
	Records []entity.Record `json:"records"`
}

// TimelineItem is one bar on the gantt chart.
type TimelineItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	DurationDays int    `json:"duration_days"`
}

type TimelineResponse struct {
	KPI   KPISummary     `json:"kpi"`
	Total int            `json:"total"`
	Items []TimelineItem `json:"items"`
}

// RAGBucket is one slice of a red/amber/green breakdown.
type RAGBucket struct {
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// RAGBreakdown covers one classification (actual or planned).
type RAGBreakdown struct {
	Green RAGBucket `json:"green"`
	Amber RAGBucket `json:"amber"`
	Red   RAGBucket `json:"red"`
}

type StatusResponse struct {
	KPI     KPISummary   `json:"kpi"`
	Total   int          `json:"total"`
	Actual  RAGBreakdown `json:"actual"`
	Planned RAGBreakdown `json:"planned"`
}

// MonthBucket is one calendar-month point on the trend chart.
type MonthBucket struct {
	Month   string  `json:"month"` // yyyy-mm
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// RankedGroup is one row of a top-N ranking.
type RankedGroup struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type TrendResponse struct {
	KPI          KPISummary    `json:"kpi"`
	Total        int           `json:"total"`
	Monthly      []MonthBucket `json:"monthly"`
	TopCustomers []RankedGroup `json:"top_customers"`
	TopChannels  []RankedGroup `json:"top_channels"`
}

// SchemaField describes one dataset column.
type SchemaField struct {
	Name string `json:"name"`
	Type string `json:"type"` // "number" | "text"
}

// FilterOptionsResponse lists distinct values per filterable dimension.
type FilterOptionsResponse struct {
	Region          []string `json:"region"`
	Country         []string `json:"country"`
	Channel         []string `json:"channel"`
	Category        []string `json:"category"`
	Brand           []string `json:"brand"`
	PromotionStatus []string `json:"promotionStatus"`
	RAGStatus       []string `json:"ragStatus"`
}

// ReloadResponse reports a dataset re-ingestion.
type ReloadResponse struct {
	Records int `json:"records"`
}
