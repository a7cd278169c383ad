// Package nlq turns free-text dashboard requests into navigation
// instructions. Matching is a fixed, ordered rule table: the first rule that
// matches wins, which keeps interpretation deterministic. There is no
// language model here; fuzzy questions fall through to the chat backend.
package nlq

import (
	"regexp"
	"strconv"
	"strings"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
)

// viewRule pairs a target view with its trigger keywords. Order of the rules
// and of the keywords inside a rule is part of the contract: ties resolve to
// the first match.
type viewRule struct {
	view     string
	keywords []string
}

var viewRules = []viewRule{
	{constant.ViewTabular, []string{"details", "table", "list", "all promotions", "show me"}},
	{constant.ViewTimeline, []string{"gantt", "timeline", "schedule", "when", "dates"}},
	{constant.ViewStatus, []string{"rag", "red", "amber", "green", "status", "performance"}},
	{constant.ViewTrend, []string{"top", "analytics", "profit", "roi", "revenue", "sales", "turnover"}},
}

var (
	categoryPattern = regexp.MustCompile(`(?i)category\s+([a-z0-9]+)`)
	brandPattern    = regexp.MustCompile(`(?i)brand\s+([a-z0-9]+)`)
	channelPattern  = regexp.MustCompile(`(?i)channel\s+([a-z0-9]+)`)
	limitPattern    = regexp.MustCompile(`(?i)top\s+(\d+)`)
)

// Interpret maps free text to a navigation instruction. It returns nil when
// no dashboard view is recognized: no view switch, no filter change, no
// error.
func Interpret(text string) *dto.NavigationInstruction {
	lower := strings.ToLower(text)

	view, ok := detectView(lower)
	if !ok {
		return nil
	}

	instr := &dto.NavigationInstruction{
		TargetView: view,
		Filters:    extractFilters(text, lower),
	}

	if m := limitPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			instr.Limit = n
		}
	}

	switch {
	case containsAny(lower, "highest", "top", "best"):
		instr.SortOrder = "desc"
	case containsAny(lower, "lowest", "worst"):
		instr.SortOrder = "asc"
	}

	return instr
}

func detectView(lower string) (string, bool) {
	for _, rule := range viewRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.view, true
			}
		}
	}
	return "", false
}

func extractFilters(text, lower string) dto.FilterSpec {
	var f dto.FilterSpec

	switch {
	case strings.Contains(lower, "sea"):
		f.Region = []string{"SEA"}
	case strings.Contains(lower, "europe"):
		f.Region = []string{"Europe"}
	case strings.Contains(lower, "asia"):
		f.Region = []string{"Asia"}
	}

	switch {
	case strings.Contains(lower, "green"):
		f.RAGStatus = []string{constant.RAGGreen}
	case strings.Contains(lower, "red"):
		f.RAGStatus = []string{constant.RAGRed}
	case strings.Contains(lower, "amber"):
		f.RAGStatus = []string{constant.RAGAmber}
	}

	switch {
	case strings.Contains(lower, "completed"):
		f.PromotionStatus = []string{constant.StatusCompleted}
	case strings.Contains(lower, "ongoing"):
		f.PromotionStatus = []string{constant.StatusOngoing}
	case strings.Contains(lower, "planned"):
		f.PromotionStatus = []string{constant.StatusPlanned}
	}

	switch {
	case containsAny(lower, "2024", "previous year", "last year"):
		f.Year = intPtr(2024)
	case containsAny(lower, "2025", "current year", "this year"):
		f.Year = intPtr(2025)
	}

	switch {
	case containsAny(lower, "h2", "second half", "2nd half"):
		f.HalfYear = strPtr("H2")
	case containsAny(lower, "h1", "first half", "1st half"):
		f.HalfYear = strPtr("H1")
	}

	switch {
	case containsAny(lower, "q1", "quarter 1", "first quarter"):
		f.Quarter = strPtr("Q1")
	case containsAny(lower, "q2", "quarter 2", "second quarter"):
		f.Quarter = strPtr("Q2")
	case containsAny(lower, "q3", "quarter 3", "third quarter"):
		f.Quarter = strPtr("Q3")
	case containsAny(lower, "q4", "quarter 4", "fourth quarter"):
		f.Quarter = strPtr("Q4")
	}

	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		f.Category = []string{m[1]}
	}
	if m := brandPattern.FindStringSubmatch(text); m != nil {
		f.Brand = []string{m[1]}
	}
	if m := channelPattern.FindStringSubmatch(text); m != nil {
		f.Channel = []string{m[1]}
	}

	return f.Normalize()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
