package service

import (
	"sync"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/store"

	"promo-insights-be/pkg/nlq"
)

// INavigationService applies language-derived navigation instructions and
// tracks the active dashboard view.
type INavigationService interface {
	Interpret(text string) dto.InterpretResponse
	Apply(instr *dto.NavigationInstruction)
	ActiveView() string
}

type navigationService struct {
	filterStore *store.FilterStore
	publisher   IPublisherService
	logger      logger.ILogger

	mu         sync.RWMutex
	activeView string
}

func NewNavigationService(filterStore *store.FilterStore, publisher IPublisherService, log logger.ILogger) INavigationService {
	return &navigationService{
		filterStore: filterStore,
		publisher:   publisher,
		logger:      log,
		activeView:  constant.ViewTabular,
	}
}

// Interpret runs the query interpreter and applies the instruction when one
// is produced. A non-match changes nothing.
func (ns *navigationService) Interpret(text string) dto.InterpretResponse {
	instr := nlq.Interpret(text)
	if instr != nil {
		ns.Apply(instr)
	}
	return dto.InterpretResponse{
		Matched:     instr != nil,
		Instruction: instr,
		ActiveView:  ns.ActiveView(),
	}
}

// Apply pushes the instruction's filters into the store, then switches the
// view. A spoken query expresses a complete new filter context, so this is a
// full replace, never a merge on top of unrelated stale keys. The replace is
// synchronous: every store observer has seen the new filters before the view
// switch becomes visible.
func (ns *navigationService) Apply(instr *dto.NavigationInstruction) {
	if instr == nil {
		return
	}

	if !instr.Filters.IsEmpty() {
		applied := ns.filterStore.Replace(instr.Filters)
		if err := ns.publisher.PublishFiltersChanged(applied); err != nil {
			ns.logger.Warn("NavigationService", "Failed to publish filter change", map[string]interface{}{"error": err.Error()})
		}
	}

	ns.mu.Lock()
	ns.activeView = instr.TargetView
	ns.mu.Unlock()

	if err := ns.publisher.PublishNavigationApplied(instr.TargetView, ns.filterStore.Current()); err != nil {
		ns.logger.Warn("NavigationService", "Failed to publish navigation", map[string]interface{}{"error": err.Error()})
	}

	ns.logger.Info("NavigationService", "Navigation applied", map[string]interface{}{
		"view":    instr.TargetView,
		"filters": ns.filterStore.Current().Signature(),
	})
}

func (ns *navigationService) ActiveView() string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return ns.activeView
}
