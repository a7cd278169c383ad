package entity

import (
	"time"

	"promo-insights-be/internal/constant"
)

// Record is one promotion event. Fields are header-driven: keys come from the
// dataset header row, values are nil (explicit null), float64 (numeric) or
// string (everything else). A record is never mutated after ingestion.
type Record map[string]any

// Str returns the string value of a field, or "" when the field is null,
// missing or numeric.
func (r Record) Str(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Num returns the numeric value of a field and whether it is a non-null
// number.
func (r Record) Num(field string) (float64, bool) {
	v, ok := r[field].(float64)
	return v, ok
}

// NumOrZero returns the numeric value of a field, treating null and
// non-numeric values as 0.
func (r Record) NumOrZero(field string) float64 {
	v, _ := r[field].(float64)
	return v
}

// IsNull reports whether a field is an explicit null or absent entirely.
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	return !ok || v == nil
}

// Date parses a dd-mm-yyyy text field. The bool is false for null, missing
// or malformed values.
func (r Record) Date(field string) (time.Time, bool) {
	s := r.Str(field)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(constant.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
