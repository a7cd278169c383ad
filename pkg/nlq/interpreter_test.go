package nlq

import (
	"testing"

	"promo-insights-be/internal/constant"
)

func TestInterpretViewDetection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantView string
	}{
		{"details keyword", "show the details please", constant.ViewTabular},
		{"table keyword", "give me a table of everything", constant.ViewTabular},
		{"list keyword", "list them", constant.ViewTabular},
		{"all promotions phrase", "all promotions please", constant.ViewTabular},
		{"gantt keyword", "put it on a gantt", constant.ViewTimeline},
		{"timeline keyword", "timeline of promos", constant.ViewTimeline},
		{"when keyword", "when do these run", constant.ViewTimeline},
		{"rag keyword", "rag overview", constant.ViewStatus},
		{"performance keyword", "how is performance", constant.ViewStatus},
		{"profit keyword", "profit by month", constant.ViewTrend},
		{"roi keyword", "roi breakdown", constant.ViewTrend},
		{"analytics keyword", "open analytics", constant.ViewTrend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr := Interpret(tt.text)
			if instr == nil {
				t.Fatalf("Interpret(%q) = nil, want view %s", tt.text, tt.wantView)
			}
			if instr.TargetView != tt.wantView {
				t.Errorf("TargetView = %s, want %s", instr.TargetView, tt.wantView)
			}
		})
	}
}

func TestInterpretNoMatch(t *testing.T) {
	for _, text := range []string{
		"what's the weather today",
		"hello there",
		"",
	} {
		if instr := Interpret(text); instr != nil {
			t.Errorf("Interpret(%q) = %+v, want nil", text, instr)
		}
	}
}

// Keyword rules are ordered: "red" belongs to the status view even though
// the same word also drives the RAG filter.
func TestInterpretKeywordPrecedence(t *testing.T) {
	instr := Interpret("red promotions")
	if instr == nil {
		t.Fatal("expected a match")
	}
	if instr.TargetView != constant.ViewStatus {
		t.Errorf("TargetView = %s, want %s", instr.TargetView, constant.ViewStatus)
	}

	// "show me" outranks "top": the tabular rule is checked first.
	instr = Interpret("show me top performers")
	if instr == nil {
		t.Fatal("expected a match")
	}
	if instr.TargetView != constant.ViewTabular {
		t.Errorf("TargetView = %s, want %s", instr.TargetView, constant.ViewTabular)
	}
}

func TestInterpretFilterExtraction(t *testing.T) {
	instr := Interpret("show me top 5 red promotions in SEA")
	if instr == nil {
		t.Fatal("expected a match")
	}

	if instr.TargetView != constant.ViewTabular {
		t.Errorf("TargetView = %s, want %s", instr.TargetView, constant.ViewTabular)
	}
	if len(instr.Filters.Region) != 1 || instr.Filters.Region[0] != "SEA" {
		t.Errorf("Region = %v, want [SEA]", instr.Filters.Region)
	}
	if len(instr.Filters.RAGStatus) != 1 || instr.Filters.RAGStatus[0] != constant.RAGRed {
		t.Errorf("RAGStatus = %v, want [%s]", instr.Filters.RAGStatus, constant.RAGRed)
	}
	if instr.Limit != 5 {
		t.Errorf("Limit = %d, want 5", instr.Limit)
	}
	if instr.SortOrder != "desc" {
		t.Errorf("SortOrder = %q, want desc", instr.SortOrder)
	}
}

func TestInterpretTemporalFilters(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantYear     int
		wantHalfYear string
		wantQuarter  string
	}{
		{"explicit year", "list promotions for 2024", 2024, "", ""},
		{"this year", "list promotions this year", 2025, "", ""},
		{"last year", "table for last year", 2024, "", ""},
		{"second half", "list the second half", 0, "H2", ""},
		{"h1 token", "show details for h1", 0, "H1", ""},
		{"first quarter", "list first quarter", 0, "", "Q1"},
		{"q3 token", "q3 promotions table", 0, "", "Q3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr := Interpret(tt.text)
			if instr == nil {
				t.Fatalf("Interpret(%q) = nil", tt.text)
			}
			f := instr.Filters
			if tt.wantYear != 0 {
				if f.Year == nil || *f.Year != tt.wantYear {
					t.Errorf("Year = %v, want %d", f.Year, tt.wantYear)
				}
			} else if f.Year != nil {
				t.Errorf("Year = %d, want unset", *f.Year)
			}
			if tt.wantHalfYear != "" {
				if f.HalfYear == nil || *f.HalfYear != tt.wantHalfYear {
					t.Errorf("HalfYear = %v, want %s", f.HalfYear, tt.wantHalfYear)
				}
			}
			if tt.wantQuarter != "" {
				if f.Quarter == nil || *f.Quarter != tt.wantQuarter {
					t.Errorf("Quarter = %v, want %s", f.Quarter, tt.wantQuarter)
				}
			}
		})
	}
}

func TestInterpretDimensionPatterns(t *testing.T) {
	instr := Interpret("list brand Aurora in category Beverages")
	if instr == nil {
		t.Fatal("expected a match")
	}
	if len(instr.Filters.Brand) != 1 || instr.Filters.Brand[0] != "Aurora" {
		t.Errorf("Brand = %v, want [Aurora]", instr.Filters.Brand)
	}
	if len(instr.Filters.Category) != 1 || instr.Filters.Category[0] != "Beverages" {
		t.Errorf("Category = %v, want [Beverages]", instr.Filters.Category)
	}
}

func TestInterpretSortOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"show me the highest sellers", "desc"},
		{"list the worst promotions", "asc"},
		{"list promotions", ""},
	}
	for _, tt := range tests {
		instr := Interpret(tt.text)
		if instr == nil {
			t.Fatalf("Interpret(%q) = nil", tt.text)
		}
		if instr.SortOrder != tt.want {
			t.Errorf("Interpret(%q).SortOrder = %q, want %q", tt.text, instr.SortOrder, tt.want)
		}
	}
}
