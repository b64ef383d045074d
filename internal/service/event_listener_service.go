package service

import (
	"context"
	"strings"

	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/pkg/mailer"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/events"
	pktNats "jobreach-be/pkg/nats"

	"github.com/google/uuid"
)

// IEventListenerService consumes the durable event bus and runs the
// side effects that do not belong in the request path, such as payment
// receipt mail.
type IEventListenerService interface {
	Start()
}

type eventListenerService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewEventListenerService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IEventListenerService {
	return &eventListenerService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		emailService: emailService,
		logger:       log,
	}
}

func (s *eventListenerService) Start() {
	err := s.subscriber.Subscribe("events.>", "jobreach-events-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventListener", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("EventListener", "Listening to events.>", nil)
}

func (s *eventListenerService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject carries the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	switch typeCode {
	case events.TypeSubscriptionPaid:
		return s.handleSubscriptionPaid(ctx, event)
	case events.TypeGuestLinked:
		s.logger.Info("EventListener", "Guest session linked", event.Payload())
		return nil
	default:
		return nil
	}
}

func (s *eventListenerService) handleSubscriptionPaid(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userId, ok := parsePayloadId(payload["user_id"])
	if !ok {
		s.logger.Warn("EventListener", "SUBSCRIPTION_PAID without user_id", payload)
		return nil
	}
	planId, ok := parsePayloadId(payload["plan_id"])
	if !ok {
		s.logger.Warn("EventListener", "SUBSCRIPTION_PAID without plan_id", payload)
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return err
	}
	if user == nil || plan == nil {
		s.logger.Warn("EventListener", "SUBSCRIPTION_PAID references unknown user or plan", payload)
		return nil
	}

	if err := s.emailService.SendPaymentReceipt(user.Email, plan.Name, plan.Price); err != nil {
		s.logger.Error("EventListener", "Failed to send payment receipt", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
	return nil
}

// Event payloads round-trip through JSON, so uuid values arrive as
// strings after consumption even when they were published as uuid.UUID.
func parsePayloadId(value interface{}) (uuid.UUID, bool) {
	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	case uuid.UUID:
		return v, true
	default:
		return uuid.Nil, false
	}
}
