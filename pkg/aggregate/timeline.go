package aggregate

import (
	"sort"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

const msPerDay = 86_400_000

// Timeline builds the gantt payload: records with a non-null start, end and
// identifier, sorted by parsed start ascending, capped to the first 20.
// Duration is whole days, rounded up.
func Timeline(records []entity.Record, f dto.FilterSpec) dto.TimelineResponse {
	subset := Filter(records, f)
	kpi := Summarize(subset)

	type row struct {
		rec   entity.Record
		start time.Time
		end   time.Time
	}
	rows := make([]row, 0, len(subset))
	for _, rec := range subset {
		start, okStart := rec.Date(constant.ColStartProm)
		end, okEnd := rec.Date(constant.ColEndProm)
		if !okStart || !okEnd || rec.IsNull(constant.ColPromoID) {
			continue
		}
		rows = append(rows, row{rec: rec, start: start, end: end})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].start.Before(rows[j].start)
	})

	total := len(rows)
	if len(rows) > constant.TimelineCap {
		rows = rows[:constant.TimelineCap]
	}

	items := make([]dto.TimelineItem, 0, len(rows))
	for _, r := range rows {
		ms := r.end.Sub(r.start).Milliseconds()
		days := int((ms + msPerDay - 1) / msPerDay)
		items = append(items, dto.TimelineItem{
			ID:           idString(r.rec),
			Name:         r.rec.Str(constant.ColPromoName),
			Start:        r.rec.Str(constant.ColStartProm),
			End:          r.rec.Str(constant.ColEndProm),
			DurationDays: days,
		})
	}

	return dto.TimelineResponse{
		KPI:   kpi,
		Total: total,
		Items: items,
	}
}

// idString renders the promotion identifier, which the dataset may carry as
// text or a bare number.
func idString(rec entity.Record) string {
	if s := rec.Str(constant.ColPromoID); s != "" {
		return s
	}
	if n, ok := rec.Num(constant.ColPromoID); ok {
		return trimFloat(n)
	}
	return ""
}
