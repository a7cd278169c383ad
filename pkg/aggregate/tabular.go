package aggregate

import (
	"sort"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

// Tabular builds the grid payload: the filtered subset, optionally sorted by
// total sales and capped to the interpreter-supplied limit.
func Tabular(records []entity.Record, f dto.FilterSpec, sortOrder string, limit int) dto.TabularResponse {
	subset := Filter(records, f)
	kpi := Summarize(subset)
	total := len(subset)

	if sortOrder != "" {
		sorted := append([]entity.Record(nil), subset...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a := sorted[i].NumOrZero(constant.ColTotalSales)
			b := sorted[j].NumOrZero(constant.ColTotalSales)
			if sortOrder == "asc" {
				return a < b
			}
			return a > b
		})
		subset = sorted
	}

	if limit > 0 && limit < len(subset) {
		subset = subset[:limit]
	}

	return dto.TabularResponse{
		KPI:     kpi,
		Total:   total,
		Records: subset,
	}
}
