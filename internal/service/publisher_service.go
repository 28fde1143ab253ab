package service

import (
	"context"
	"encoding/json"

	"rental-marketplace-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService queues contract dispatches for the background consumer.
type IPublisherService interface {
	DispatchQueue
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Enqueue(ctx context.Context, msg dto.ContractDispatchMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	m := message.NewMessage(watermill.NewUUID(), payload)
	m.SetContext(ctx)
	return p.publisher.Publish(p.topicName, m)
}
