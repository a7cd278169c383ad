package aggregate

import (
	"math"
	"strings"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

// Status builds the RAG breakdown for both the actual and the planned
// classification. Percentages use a denominator floor of 1, so an empty
// filtered set yields 0% buckets instead of a division error.
func Status(records []entity.Record, f dto.FilterSpec) dto.StatusResponse {
	subset := Filter(records, f)

	return dto.StatusResponse{
		KPI:     Summarize(subset),
		Total:   len(subset),
		Actual:  breakdown(subset, constant.ColRAGActual),
		Planned: breakdown(subset, constant.ColRAGPlanned),
	}
}

func breakdown(records []entity.Record, field string) dto.RAGBreakdown {
	var green, amber, red int
	for _, rec := range records {
		switch strings.ToUpper(rec.Str(field)) {
		case constant.RAGGreen:
			green++
		case constant.RAGAmber:
			amber++
		case constant.RAGRed:
			red++
		}
	}

	total := len(records)
	return dto.RAGBreakdown{
		Green: dto.RAGBucket{Count: green, Percent: percent(green, total)},
		Amber: dto.RAGBucket{Count: amber, Percent: percent(amber, total)},
		Red:   dto.RAGBucket{Count: red, Percent: percent(red, total)},
	}
}

func percent(count, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
