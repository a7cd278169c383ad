package aggregate

import (
	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

// Sum adds a numeric field over all records, treating null as 0.
func Sum(records []entity.Record, field string) float64 {
	var total float64
	for _, rec := range records {
		total += rec.NumOrZero(field)
	}
	return total
}

// Avg averages a numeric field over only the records that carry a non-null
// value for it. The average of zero such records is 0, not NaN.
func Avg(records []entity.Record, field string) float64 {
	var total float64
	var count int
	for _, rec := range records {
		if v, ok := rec.Num(field); ok {
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Summarize computes the KPI rollup shown above every view.
func Summarize(records []entity.Record) dto.KPISummary {
	return dto.KPISummary{
		Count:         len(records),
		TotalSales:    Sum(records, constant.ColTotalSales),
		BaselineSales: Sum(records, constant.ColBaselineSales),
		TotalProfit:   Sum(records, constant.ColProfit),
		TotalUplift:   Sum(records, constant.ColUpliftValue),
		AvgROI:        Avg(records, constant.ColROI),
	}
}
