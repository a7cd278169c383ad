package service

import (
	"fmt"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/store"

	"promo-insights-be/pkg/aggregate"

	"github.com/patrickmn/go-cache"
)

// IDashboardService runs the view aggregators over (snapshot, current
// filters). Aggregation is pure, so results are cached per
// (view, filters, sort, limit) and the whole cache drops when the filters or
// the dataset change.
type IDashboardService interface {
	View(view string, sortOrder string, limit int) (interface{}, error)
	FilterOptions() dto.FilterOptionsResponse
	Schema() []dto.SchemaField
	InvalidateCache()
}

type dashboardService struct {
	datasetRepo memory.IDatasetRepository
	filterStore *store.FilterStore
	logger      logger.ILogger
	results     *cache.Cache
}

func NewDashboardService(datasetRepo memory.IDatasetRepository, filterStore *store.FilterStore, log logger.ILogger) IDashboardService {
	return &dashboardService{
		datasetRepo: datasetRepo,
		filterStore: filterStore,
		logger:      log,
		results:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (ds *dashboardService) View(view string, sortOrder string, limit int) (interface{}, error) {
	filters := ds.filterStore.Current()
	key := fmt.Sprintf("%s|%s|%s|%d", view, filters.Signature(), sortOrder, limit)

	if v, found := ds.results.Get(key); found {
		return v, nil
	}

	records := ds.datasetRepo.AllRecords()

	var payload interface{}
	switch view {
	case constant.ViewTabular:
		payload = aggregate.Tabular(records, filters, sortOrder, limit)
	case constant.ViewTimeline:
		payload = aggregate.Timeline(records, filters)
	case constant.ViewStatus:
		payload = aggregate.Status(records, filters)
	case constant.ViewTrend:
		payload = aggregate.Trend(records, filters, limit)
	default:
		return nil, errUnknownView(view)
	}

	ds.results.Set(key, payload, cache.DefaultExpiration)
	return payload, nil
}

func (ds *dashboardService) FilterOptions() dto.FilterOptionsResponse {
	return dto.FilterOptionsResponse{
		Region:          ds.datasetRepo.DistinctValues(constant.ColRegion),
		Country:         ds.datasetRepo.DistinctValues(constant.ColCountry),
		Channel:         ds.datasetRepo.DistinctValues(constant.ColChannel),
		Category:        ds.datasetRepo.DistinctValues(constant.ColCategory),
		Brand:           ds.datasetRepo.DistinctValues(constant.ColBrand),
		PromotionStatus: ds.datasetRepo.DistinctValues(constant.ColPromStatus),
		RAGStatus:       ds.datasetRepo.DistinctValues(constant.ColRAGActual),
	}
}

func (ds *dashboardService) Schema() []dto.SchemaField {
	return ds.datasetRepo.Schema()
}

// InvalidateCache drops every cached aggregation. Called by the event
// consumer on filter changes and dataset reloads.
func (ds *dashboardService) InvalidateCache() {
	ds.results.Flush()
}
