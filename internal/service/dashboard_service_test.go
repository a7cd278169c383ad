package service

import (
	"testing"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/store"
)

func newTestDashboard(raw string) (IDashboardService, *store.FilterStore, memory.IDatasetRepository) {
	repo := memory.NewDatasetRepository("", "", nopLogger{})
	repo.LoadRaw(raw)
	filterStore := store.NewFilterStore()
	return NewDashboardService(repo, filterStore, nopLogger{}), filterStore, repo
}

const dashboardFixture = "Promo_ID,Region,RAG_Actual,RAG_Planned,Start_Prom,End_Prom,Total_Sales\n" +
	"P1,SEA,GREEN,GREEN,10-01-2024,20-01-2024,1000\n" +
	"P2,Europe,RED,AMBER,05-07-2024,15-07-2024,3000\n"

func TestViewDispatch(t *testing.T) {
	svc, _, _ := newTestDashboard(dashboardFixture)

	for _, view := range []string{
		constant.ViewTabular, constant.ViewTimeline, constant.ViewStatus, constant.ViewTrend,
	} {
		if _, err := svc.View(view, "", 0); err != nil {
			t.Errorf("View(%s) error: %v", view, err)
		}
	}

	if _, err := svc.View("heatmap", "", 0); err == nil {
		t.Error("unknown view should error")
	}
}

func TestViewAppliesCurrentFilters(t *testing.T) {
	svc, filterStore, _ := newTestDashboard(dashboardFixture)

	payload, err := svc.View(constant.ViewTabular, "", 0)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got := payload.(dto.TabularResponse).Total; got != 2 {
		t.Errorf("unfiltered Total = %d, want 2", got)
	}

	filterStore.Merge(dto.FilterSpec{Region: []string{"SEA"}})
	svc.InvalidateCache()

	payload, err = svc.View(constant.ViewTabular, "", 0)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got := payload.(dto.TabularResponse).Total; got != 1 {
		t.Errorf("filtered Total = %d, want 1", got)
	}
}

// Filter signatures key the cache, so changed filters never serve a stale
// payload even without an invalidation in between.
func TestViewCacheKeyedBySignature(t *testing.T) {
	svc, filterStore, _ := newTestDashboard(dashboardFixture)

	first, _ := svc.View(constant.ViewTabular, "", 0)
	filterStore.Merge(dto.FilterSpec{Region: []string{"Europe"}})
	second, _ := svc.View(constant.ViewTabular, "", 0)

	if first.(dto.TabularResponse).Total == second.(dto.TabularResponse).Total {
		t.Error("different filters should produce different payloads")
	}
}

func TestInvalidateCachePicksUpReload(t *testing.T) {
	svc, _, repo := newTestDashboard(dashboardFixture)

	payload, _ := svc.View(constant.ViewTabular, "", 0)
	if got := payload.(dto.TabularResponse).Total; got != 2 {
		t.Fatalf("Total = %d, want 2", got)
	}

	repo.LoadRaw("Promo_ID,Region\nP9,Asia\n")
	svc.InvalidateCache()

	payload, _ = svc.View(constant.ViewTabular, "", 0)
	if got := payload.(dto.TabularResponse).Total; got != 1 {
		t.Errorf("Total after reload = %d, want 1", got)
	}
}

func TestFilterOptions(t *testing.T) {
	svc, _, _ := newTestDashboard(dashboardFixture)

	opts := svc.FilterOptions()
	if len(opts.Region) != 2 || opts.Region[0] != "Europe" {
		t.Errorf("Region options = %v, want sorted [Europe SEA]", opts.Region)
	}
	if len(opts.RAGStatus) != 2 {
		t.Errorf("RAGStatus options = %v, want 2 values", opts.RAGStatus)
	}
}
