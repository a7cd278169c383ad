package service

import (
	"encoding/json"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts filter/navigation changes on the in-process event
// bus. Consumers (cache invalidation, websocket fan-out, audit) stay
// decoupled from the stores that produce the changes.
type IPublisherService interface {
	PublishFiltersChanged(filters dto.FilterSpec) error
	PublishNavigationApplied(view string, filters dto.FilterSpec) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
	}
}

// FiltersChangedMessage is the payload on TopicFiltersChanged.
type FiltersChangedMessage struct {
	Filters dto.FilterSpec `json:"filters"`
}

// NavigationAppliedMessage is the payload on TopicNavigationApplied.
type NavigationAppliedMessage struct {
	View    string         `json:"view"`
	Filters dto.FilterSpec `json:"filters"`
}

func (ps *publisherService) PublishFiltersChanged(filters dto.FilterSpec) error {
	payload, err := json.Marshal(FiltersChangedMessage{Filters: filters})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(constant.TopicFiltersChanged, msg)
}

func (ps *publisherService) PublishNavigationApplied(view string, filters dto.FilterSpec) error {
	payload, err := json.Marshal(NavigationAppliedMessage{View: view, Filters: filters})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(constant.TopicNavigationApplied, msg)
}
