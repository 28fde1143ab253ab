package service

import (
	"context"
	"encoding/json"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	contracts   IContractService
	logger      logger.ILogger
	maxAttempts int
	backoff     time.Duration

	// attempts is keyed by message UUID; redelivered copies keep the UUID.
	attempts map[string]int
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	contracts IContractService,
	log logger.ILogger,
	maxAttempts int,
	backoff time.Duration,
) IConsumerService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		contracts:   contracts,
		logger:      log,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		attempts:    make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ContractDispatchMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal dispatch message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.attempts[msg.UUID]++
	attempt := cs.attempts[msg.UUID]

	cs.logger.Info("CONSUMER", "Retrying contract dispatch", map[string]interface{}{
		"agreement_id": payload.AgreementId,
		"attempt":      attempt,
	})

	err := cs.contracts.RetryDispatch(ctx, payload.AgreementId, payload.PaymentId)
	if err == nil {
		delete(cs.attempts, msg.UUID)
		msg.Ack()
		return
	}

	retryable := apperror.Is(err, apperror.KindExternalService) || apperror.Is(err, apperror.KindInternal)
	if !retryable || attempt >= cs.maxAttempts {
		cs.logger.Error("CONSUMER", "Giving up on contract dispatch; left for the retry sweep", map[string]interface{}{
			"agreement_id": payload.AgreementId,
			"attempt":      attempt,
			"error":        err.Error(),
		})
		delete(cs.attempts, msg.UUID)
		msg.Ack()
		return
	}

	cs.logger.Warn("CONSUMER", "Contract dispatch failed, will retry", map[string]interface{}{
		"agreement_id": payload.AgreementId,
		"attempt":      attempt,
		"error":        err.Error(),
	})
	select {
	case <-ctx.Done():
		msg.Nack()
		return
	case <-time.After(cs.backoff * time.Duration(attempt)):
	}
	msg.Nack()
}
