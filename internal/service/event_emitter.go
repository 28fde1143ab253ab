package service

import (
	"context"
	"time"

	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/pkg/events"

	"github.com/google/uuid"
)

// Domain event codes published on the bus.
const (
	EventRentalRequestCreated   = "RENTAL_REQUEST_CREATED"
	EventRentalRequestAccepted  = "RENTAL_REQUEST_ACCEPTED"
	EventRentalRequestRejected  = "RENTAL_REQUEST_REJECTED"
	EventRentalRequestWithdrawn = "RENTAL_REQUEST_WITHDRAWN"
	EventAgreementOffered       = "AGREEMENT_OFFERED"
	EventAgreementConfirmed     = "AGREEMENT_CONFIRMED"
	EventAgreementRejected      = "AGREEMENT_REJECTED"
	EventPaymentCompleted       = "PAYMENT_COMPLETED"
	EventPaymentFailed          = "PAYMENT_FAILED"
	EventPaymentRefunded        = "PAYMENT_REFUNDED"
	EventWalletCredited         = "WALLET_CREDITED"
	EventContractSent           = "CONTRACT_SENT"
	EventContractDispatchFailed = "CONTRACT_DISPATCH_FAILED"
	EventContractSigned         = "CONTRACT_SIGNED"
	EventContractDeclined       = "CONTRACT_DECLINED"
	EventTenancyEnded           = "TENANCY_ENDED"
	EventWithdrawalRequested    = "WITHDRAWAL_REQUESTED"
	EventWithdrawalApproved     = "WITHDRAWAL_APPROVED"
	EventWithdrawalRejected     = "WITHDRAWAL_REJECTED"
	EventWithdrawalCancelled    = "WITHDRAWAL_CANCELLED"
	EventWithdrawalCompleted    = "WITHDRAWAL_COMPLETED"
	EventWithdrawalFailed       = "WITHDRAWAL_FAILED"
)

// payloadRecipients is the payload key listing the users to notify.
const payloadRecipients = "recipients"

// eventEmitter publishes best effort: a bus failure is logged and never fails
// the operation that raised the event.
type eventEmitter struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func newEventEmitter(publisher events.Publisher, log logger.ILogger) eventEmitter {
	return eventEmitter{publisher: publisher, logger: log}
}

func (e eventEmitter) emit(ctx context.Context, eventType string, recipients []uuid.UUID, data map[string]interface{}) {
	if e.publisher == nil {
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	ids := make([]string, 0, len(recipients))
	for _, id := range recipients {
		if id != uuid.Nil {
			ids = append(ids, id.String())
		}
	}
	data[payloadRecipients] = ids

	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := e.publisher.Publish(ctx, evt); err != nil {
		e.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
