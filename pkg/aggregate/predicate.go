// Package aggregate derives view payloads from the record snapshot and the
// active filters. Every function here is pure: the same (records, filters)
// input always yields the same output, which is what makes the views
// testable without any running service.
package aggregate

import (
	"strings"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/entity"
)

// Filter returns the records passing every present filter field. Absent
// fields impose no constraint. The result is always a subset of records and
// never shares backing arrays with future mutations (records are immutable).
func Filter(records []entity.Record, f dto.FilterSpec) []entity.Record {
	f = f.Normalize()
	out := make([]entity.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, f) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a record satisfies every present filter field.
func Matches(rec entity.Record, f dto.FilterSpec) bool {
	if !memberOf(rec.Str(constant.ColRegion), f.Region) {
		return false
	}
	if !memberOf(rec.Str(constant.ColCountry), f.Country) {
		return false
	}
	if !memberOf(rec.Str(constant.ColChannel), f.Channel) {
		return false
	}
	if !memberOf(rec.Str(constant.ColCategory), f.Category) {
		return false
	}
	if !memberOf(rec.Str(constant.ColBrand), f.Brand) {
		return false
	}
	if !memberOf(rec.Str(constant.ColPromStatus), f.PromotionStatus) {
		return false
	}
	if !memberOf(rec.Str(constant.ColRAGActual), f.RAGStatus) {
		return false
	}

	start, hasStart := rec.Date(constant.ColStartProm)
	end, hasEnd := rec.Date(constant.ColEndProm)

	if f.StartDate != nil {
		bound, err := time.Parse(constant.DateLayout, *f.StartDate)
		if err != nil || !hasStart || start.Before(bound) {
			return false
		}
	}
	if f.EndDate != nil {
		bound, err := time.Parse(constant.DateLayout, *f.EndDate)
		if err != nil || !hasEnd || end.After(bound) {
			return false
		}
	}

	if f.Year != nil {
		if !hasStart || start.Year() != *f.Year {
			return false
		}
	}
	if f.HalfYear != nil {
		if !hasStart {
			return false
		}
		half := "H1"
		if start.Month() > time.June {
			half = "H2"
		}
		if half != *f.HalfYear {
			return false
		}
	}
	if f.Quarter != nil && !strings.EqualFold(rec.Str(constant.ColQuarter), *f.Quarter) {
		return false
	}

	return true
}

// memberOf is case-insensitive set membership; an absent (nil) set matches
// everything.
func memberOf(value string, set []string) bool {
	if set == nil {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(value, s) {
			return true
		}
	}
	return false
}
