package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/events"
	pktNats "rental-marketplace-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification dto.NotificationResponse)
}

// EventSubscriber is the part of the NATS subscriber the service needs.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type notificationTemplate struct {
	title   string
	message string
}

// templates maps event codes to inbox text. Placeholders are payload keys.
var templates = map[string]notificationTemplate{
	EventRentalRequestCreated:   {"New rental request", "A tenant asked to rent {room_title}."},
	EventRentalRequestAccepted:  {"Rental request accepted", "Your rental request was accepted."},
	EventRentalRequestRejected:  {"Rental request declined", "Your rental request was declined."},
	EventRentalRequestWithdrawn: {"Rental request withdrawn", "A tenant withdrew their rental request."},
	EventAgreementOffered:       {"Agreement ready", "Review and confirm the agreement for {room_title}."},
	EventAgreementConfirmed:     {"Agreement confirmed", "The tenant confirmed the agreement."},
	EventAgreementRejected:      {"Agreement rejected", "The tenant rejected the agreement: {reason}"},
	EventPaymentCompleted:       {"Deposit paid", "A deposit of {amount} VND was received."},
	EventPaymentFailed:          {"Payment failed", "Your deposit payment failed: {reason}"},
	EventPaymentRefunded:        {"Deposit refunded", "Your duplicate deposit of {amount} VND was refunded."},
	EventWalletCredited:         {"Wallet credited", "{amount} VND was added to your wallet."},
	EventContractSent:           {"Contract sent", "The lease contract was sent for signing."},
	EventContractDispatchFailed: {"Contract delayed", "The lease contract could not be sent yet. We will retry."},
	EventContractSigned:         {"Contract signed", "The lease contract was signed. Your tenancy is active."},
	EventContractDeclined:       {"Contract declined", "The lease contract was declined."},
	EventTenancyEnded:           {"Tenancy ended", "The tenancy has ended."},
	EventWithdrawalRequested:    {"Withdrawal requested", "A tenant requested a withdrawal of {amount} VND."},
	EventWithdrawalApproved:     {"Withdrawal approved", "Your withdrawal of {net_amount} VND was approved."},
	EventWithdrawalRejected:     {"Withdrawal rejected", "Your withdrawal was rejected: {reason}"},
	EventWithdrawalCancelled:    {"Withdrawal cancelled", "A tenant cancelled their withdrawal request."},
	EventWithdrawalCompleted:    {"Withdrawal completed", "{net_amount} VND was paid out."},
	EventWithdrawalFailed:       {"Withdrawal failed", "The payout failed: {message}"},
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber EventSubscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub EventSubscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus, notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe(ctx, "events.>", "notif-service-worker", s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	tmpl, ok := templates[typeCode]
	if !ok {
		s.logger.Debug("NotificationService", fmt.Sprintf("No template for event '%s'", typeCode), nil)
		return nil
	}

	payload := event.Payload()
	recipients := recipientsOf(payload)
	if len(recipients) == 0 {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no recipients", typeCode), nil)
		return nil
	}

	data := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if k != payloadRecipients {
			data[k] = v
		}
	}
	message := render(tmpl.message, data)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, userID := range recipients {
		notif := &entity.Notification{
			UserId:  userID,
			Type:    typeCode,
			Title:   tmpl.title,
			Message: message,
			Data:    data,
		}
		if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
			// Returning the error makes NATS redeliver the event.
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err.Error()})
			return err
		}

		if s.delivery != nil {
			s.delivery.Send(userID, toNotificationResponse(notif))
		}
	}
	return nil
}

// recipientsOf reads the recipients list. After a trip over the bus it is
// a []interface{} of strings.
func recipientsOf(payload map[string]interface{}) []uuid.UUID {
	var raw []string
	switch v := payload[payloadRecipients].(type) {
	case []string:
		raw = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Simple template engine: replaces {key} with the payload value.
func render(tmpl string, data map[string]interface{}) string {
	msg := tmpl
	for k, v := range data {
		val := fmt.Sprintf("%v", v)
		// Amounts come back from JSON as float64.
		if f, ok := v.(float64); ok && f == math.Trunc(f) {
			val = strconv.FormatInt(int64(f), 10)
		}
		msg = strings.ReplaceAll(msg, "{"+k+"}", val)
	}
	return msg
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.NotificationResponse], error) {
	q.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner := specification.UserOwnedBy{UserID: userID}

	total, err := uow.NotificationRepository().Count(ctx, owner)
	if err != nil {
		return nil, err
	}
	notifs, err := uow.NotificationRepository().FindAll(ctx, owner,
		specification.NewestFirst{},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		items = append(items, toNotificationResponse(n))
	}
	return &dto.PagedResponse[dto.NotificationResponse]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.Filter("is_read", false),
	)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	err := s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAsRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("notification not found")
	}
	return err
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAllAsRead(ctx, userID)
}
