package service

import (
	"context"
	"encoding/json"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/model"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/websocket"

	"promo-insights-be/pkg/events"
	pkgNats "promo-insights-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process event bus: it drops stale
// aggregation caches, fans updates out to connected dashboards and relays
// audit events to NATS when available.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	dashboard IDashboardService
	hub       *websocket.Hub
	natsPub   *pkgNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	dashboard IDashboardService,
	hub *websocket.Hub,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		dashboard: dashboard,
		hub:       hub,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	filterMsgs, err := cs.pubSub.Subscribe(ctx, constant.TopicFiltersChanged)
	if err != nil {
		return err
	}
	navMsgs, err := cs.pubSub.Subscribe(ctx, constant.TopicNavigationApplied)
	if err != nil {
		return err
	}

	go func() {
		for msg := range filterMsgs {
			cs.processFiltersChanged(ctx, msg)
		}
	}()
	go func() {
		for msg := range navMsgs {
			cs.processNavigationApplied(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processFiltersChanged(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload FiltersChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal filter event", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.dashboard.InvalidateCache()

	cs.hub.Broadcast(model.UpdateMessage{
		Type:      "filters",
		Payload:   payload.Filters,
		Timestamp: time.Now(),
	})

	cs.audit(ctx, events.NewFiltersChanged(payload.Filters.Signature()))
}

func (cs *consumerService) processNavigationApplied(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload NavigationAppliedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal navigation event", map[string]interface{}{"error": err.Error()})
		return
	}

	cs.hub.Broadcast(model.UpdateMessage{
		Type:      "navigation",
		Payload:   payload,
		Timestamp: time.Now(),
	})

	cs.audit(ctx, events.NewNavigationApplied(payload.View, payload.Filters.Signature()))
}

func (cs *consumerService) audit(ctx context.Context, ev events.Event) {
	if cs.natsPub == nil {
		return
	}
	if err := cs.natsPub.Publish(ctx, ev); err != nil {
		cs.logger.Warn("ConsumerService", "Audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}
