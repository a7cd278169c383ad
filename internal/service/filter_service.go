package service

import (
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/store"
)

// IFilterService is the UI-control path into the shared filter state. Unlike
// language-derived navigation it merges incrementally: one control changes
// one field and leaves the rest alone.
type IFilterService interface {
	Current() dto.FilterSpec
	Merge(partial dto.FilterSpec) dto.FilterSpec
	Replace(spec dto.FilterSpec) dto.FilterSpec
	ResetAll() dto.FilterSpec
	ResetField(field string) (dto.FilterSpec, error)
}

type filterService struct {
	filterStore *store.FilterStore
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewFilterService(filterStore *store.FilterStore, publisher IPublisherService, log logger.ILogger) IFilterService {
	return &filterService{
		filterStore: filterStore,
		publisher:   publisher,
		logger:      log,
	}
}

func (fs *filterService) Current() dto.FilterSpec {
	return fs.filterStore.Current()
}

func (fs *filterService) Merge(partial dto.FilterSpec) dto.FilterSpec {
	next := fs.filterStore.Merge(partial)
	fs.publish(next)
	return next
}

func (fs *filterService) Replace(spec dto.FilterSpec) dto.FilterSpec {
	next := fs.filterStore.Replace(spec)
	fs.publish(next)
	return next
}

func (fs *filterService) ResetAll() dto.FilterSpec {
	next := fs.filterStore.ResetAll()
	fs.publish(next)
	return next
}

func (fs *filterService) ResetField(field string) (dto.FilterSpec, error) {
	known := false
	for _, name := range dto.FilterFields {
		if name == field {
			known = true
			break
		}
	}
	if !known {
		return dto.FilterSpec{}, errUnknownFilterField(field)
	}

	next := fs.filterStore.ResetField(field)
	fs.publish(next)
	return next, nil
}

func (fs *filterService) publish(next dto.FilterSpec) {
	if err := fs.publisher.PublishFiltersChanged(next); err != nil {
		fs.logger.Warn("FilterService", "Failed to publish filter change", map[string]interface{}{"error": err.Error()})
	}
}
