package aggregate

import (
	"sort"
	"strconv"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

// Trend builds the analytics payload: total sales bucketed by the calendar
// month of the promotion start date, plus top-N rankings by customer and
// channel. limit overrides the default group count when positive.
func Trend(records []entity.Record, f dto.FilterSpec, limit int) dto.TrendResponse {
	subset := Filter(records, f)

	if limit <= 0 {
		limit = constant.DefaultTopN
	}

	return dto.TrendResponse{
		KPI:          Summarize(subset),
		Total:        len(subset),
		Monthly:      monthlyBuckets(subset),
		TopCustomers: TopN(subset, constant.ColCustomer, constant.ColTotalSales, limit),
		TopChannels:  TopN(subset, constant.ColChannel, constant.ColTotalSales, limit),
	}
}

func monthlyBuckets(records []entity.Record) []dto.MonthBucket {
	type acc struct {
		total float64
		count int
	}
	buckets := make(map[string]*acc)
	for _, rec := range records {
		start, ok := rec.Date(constant.ColStartProm)
		if !ok {
			continue
		}
		key := start.Format("2006-01")
		a := buckets[key]
		if a == nil {
			a = &acc{}
			buckets[key] = a
		}
		a.total += rec.NumOrZero(constant.ColTotalSales)
		a.count++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.MonthBucket, 0, len(keys))
	for _, k := range keys {
		a := buckets[k]
		avg := 0.0
		if a.count > 0 {
			avg = a.total / float64(a.count)
		}
		out = append(out, dto.MonthBucket{
			Month:   k,
			Count:   a.count,
			Total:   a.total,
			Average: avg,
		})
	}
	return out
}

// TopN groups records by a dimension, sums a metric per group and returns
// the n largest groups, descending.
func TopN(records []entity.Record, dimension, metric string, n int) []dto.RankedGroup {
	sums := make(map[string]float64)
	for _, rec := range records {
		name := rec.Str(dimension)
		if name == "" {
			continue
		}
		sums[name] += rec.NumOrZero(metric)
	}

	groups := make([]dto.RankedGroup, 0, len(sums))
	for name, value := range sums {
		groups = append(groups, dto.RankedGroup{Name: name, Value: value})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value == groups[j].Value {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].Value > groups[j].Value
	})

	if n < len(groups) {
		groups = groups[:n]
	}
	return groups
}

// trimFloat renders a number without a trailing ".0" noise for integral
// values.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
