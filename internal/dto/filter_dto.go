package dto

import (
	"fmt"
	"sort"
	"strings"
)

// FilterSpec is the structured filter criteria shared between the query
// interpreter, the filter store and the view aggregators. Absent fields
// impose no constraint. A present slice field is never empty; Normalize
// enforces that so an extraction yielding zero matches cannot produce an
// always-false filter.
type FilterSpec struct {
	StartDate       *string  `json:"startDate,omitempty"`
	EndDate         *string  `json:"endDate,omitempty"`
	Region          []string `json:"region,omitempty"`
	Country         []string `json:"country,omitempty"`
	Channel         []string `json:"channel,omitempty"`
	Category        []string `json:"category,omitempty"`
	Brand           []string `json:"brand,omitempty"`
	PromotionStatus []string `json:"promotionStatus,omitempty"`
	RAGStatus       []string `json:"ragStatus,omitempty"`
	Year            *int     `json:"year,omitempty"`
	HalfYear        *string  `json:"halfYear,omitempty"`
	Quarter         *string  `json:"quarter,omitempty"`
}

// FilterFields lists the resettable field names, matching the JSON keys.
var FilterFields = []string{
	"startDate", "endDate", "region", "country", "channel", "category",
	"brand", "promotionStatus", "ragStatus", "year", "halfYear", "quarter",
}

// Normalize drops empty slice fields and returns the spec for chaining.
func (f FilterSpec) Normalize() FilterSpec {
	if len(f.Region) == 0 {
		f.Region = nil
	}
	if len(f.Country) == 0 {
		f.Country = nil
	}
	if len(f.Channel) == 0 {
		f.Channel = nil
	}
	if len(f.Category) == 0 {
		f.Category = nil
	}
	if len(f.Brand) == 0 {
		f.Brand = nil
	}
	if len(f.PromotionStatus) == 0 {
		f.PromotionStatus = nil
	}
	if len(f.RAGStatus) == 0 {
		f.RAGStatus = nil
	}
	return f
}

// IsEmpty reports whether the spec constrains nothing.
func (f FilterSpec) IsEmpty() bool {
	f = f.Normalize()
	return f.StartDate == nil && f.EndDate == nil && f.Region == nil &&
		f.Country == nil && f.Channel == nil && f.Category == nil &&
		f.Brand == nil && f.PromotionStatus == nil && f.RAGStatus == nil &&
		f.Year == nil && f.HalfYear == nil && f.Quarter == nil
}

// Merge shallow-merges partial over f: fields present in partial overwrite,
// fields absent from partial are preserved.
func (f FilterSpec) Merge(partial FilterSpec) FilterSpec {
	partial = partial.Normalize()
	out := f.Normalize()
	if partial.StartDate != nil {
		out.StartDate = partial.StartDate
	}
	if partial.EndDate != nil {
		out.EndDate = partial.EndDate
	}
	if partial.Region != nil {
		out.Region = partial.Region
	}
	if partial.Country != nil {
		out.Country = partial.Country
	}
	if partial.Channel != nil {
		out.Channel = partial.Channel
	}
	if partial.Category != nil {
		out.Category = partial.Category
	}
	if partial.Brand != nil {
		out.Brand = partial.Brand
	}
	if partial.PromotionStatus != nil {
		out.PromotionStatus = partial.PromotionStatus
	}
	if partial.RAGStatus != nil {
		out.RAGStatus = partial.RAGStatus
	}
	if partial.Year != nil {
		out.Year = partial.Year
	}
	if partial.HalfYear != nil {
		out.HalfYear = partial.HalfYear
	}
	if partial.Quarter != nil {
		out.Quarter = partial.Quarter
	}
	return out
}

// Without returns a copy with the named field removed. Unknown names are a
// no-op.
func (f FilterSpec) Without(field string) FilterSpec {
	out := f.Normalize()
	switch field {
	case "startDate":
		out.StartDate = nil
	case "endDate":
		out.EndDate = nil
	case "region":
		out.Region = nil
	case "country":
		out.Country = nil
	case "channel":
		out.Channel = nil
	case "category":
		out.Category = nil
	case "brand":
		out.Brand = nil
	case "promotionStatus":
		out.PromotionStatus = nil
	case "ragStatus":
		out.RAGStatus = nil
	case "year":
		out.Year = nil
	case "halfYear":
		out.HalfYear = nil
	case "quarter":
		out.Quarter = nil
	}
	return out
}

// Signature returns a stable string for cache keying. Slice order is
// normalized so logically equal specs collide.
func (f FilterSpec) Signature() string {
	f = f.Normalize()
	var b strings.Builder
	scalar := func(name string, v any) {
		fmt.Fprintf(&b, "%s=%v;", name, v)
	}
	set := func(name string, vals []string) {
		if len(vals) == 0 {
			return
		}
		sorted := append([]string(nil), vals...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "%s=%s;", name, strings.Join(sorted, ","))
	}
	if f.StartDate != nil {
		scalar("startDate", *f.StartDate)
	}
	if f.EndDate != nil {
		scalar("endDate", *f.EndDate)
	}
	set("region", f.Region)
	set("country", f.Country)
	set("channel", f.Channel)
	set("category", f.Category)
	set("brand", f.Brand)
	set("promotionStatus", f.PromotionStatus)
	set("ragStatus", f.RAGStatus)
	if f.Year != nil {
		scalar("year", *f.Year)
	}
	if f.HalfYear != nil {
		scalar("halfYear", *f.HalfYear)
	}
	if f.Quarter != nil {
		scalar("quarter", *f.Quarter)
	}
	return b.String()
}
