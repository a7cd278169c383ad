package constant

// Well-known dataset columns. The dataset itself is header-driven (~60
// columns); these are the ones the aggregators and filters reach for by name.
const (
	ColPromoID    = "Promo_ID"
	ColPromoName  = "Promo_Name"
	ColRegion     = "Region"
	ColCountry    = "Country"
	ColChannel    = "Channel"
	ColCategory   = "Category"
	ColBrand      = "Brand"
	ColCustomer   = "Customer"
	ColPromStatus = "Prom_Status"
	ColRAGActual  = "RAG_Actual"
	ColRAGPlanned = "RAG_Planned"

	ColStartProm = "Start_Prom"
	ColEndProm   = "End_Prom"
	ColWeek      = "Week"

	ColTotalSales    = "Total_Sales"
	ColBaselineSales = "Baseline_Sales"
	ColUpliftValue   = "Uplift_Value"
	ColProfit        = "Profit"
	ColROI           = "ROI"

	// Derived at ingestion from the Week column (ISO week buckets).
	ColQuarter = "Quarter"
)

// DateLayout is the day-month-year text form dates are stored in.
const DateLayout = "02-01-2006"
