package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/events"
	pktNats "jobreach-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) error
	GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *paymentService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = &dto.PlanResponse{
			Id:           p.Id,
			Name:         p.Name,
			Slug:         p.Slug,
			Price:        p.Price,
			Description:  p.Description,
			AiDailyLimit: p.AiDailyLimit,
		}
	}
	return res, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.BySlug{Slug: req.PlanSlug})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	existing, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("an active subscription already exists")
	}

	orderId := uuid.New().String()
	sub := &entity.Subscription{
		Id:      uuid.New(),
		UserId:  userId,
		PlanId:  plan.Id,
		OrderId: orderId,
		Status:  entity.SubscriptionStatusPending,
	}
	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	var sClient snap.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: plan.Price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: plan.Price,
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return errors.New("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("Payment", "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return errors.New("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindSubscription(ctx, specification.ByOrderID{OrderID: req.OrderId})
	if err != nil {
		return err
	}
	if sub == nil {
		return errors.New("subscription not found")
	}

	var newStatus entity.SubscriptionStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" || req.FraudStatus == "deny" {
			return nil
		}
		newStatus = entity.SubscriptionStatusActive
	case "deny", "cancel", "expire":
		newStatus = entity.SubscriptionStatusCanceled
	default:
		// pending and unknown statuses need no action
		return nil
	}

	if sub.Status == newStatus {
		return nil
	}

	sub.Status = newStatus
	if newStatus == entity.SubscriptionStatusActive {
		periodEnd := time.Now().AddDate(0, 1, 0)
		sub.CurrentPeriodEnd = &periodEnd
	}

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if newStatus == entity.SubscriptionStatusActive && s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeSubscriptionPaid,
			Data: map[string]interface{}{
				"user_id":  sub.UserId,
				"plan_id":  sub.PlanId,
				"order_id": sub.OrderId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("Payment", "Failed to publish subscription event", map[string]interface{}{
				"order_id": sub.OrderId,
				"error":    err.Error(),
			})
		}
	}

	s.log.Info("Payment", "Subscription updated from webhook", map[string]interface{}{
		"order_id": sub.OrderId,
		"status":   string(newStatus),
	})
	return nil
}

func (s *paymentService) GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	planName := ""
	plan, err := uow.SubscriptionRepository().FindPlan(ctx, specification.ByID{ID: sub.PlanId})
	if err == nil && plan != nil {
		planName = plan.Name
	}

	active := sub.Status == entity.SubscriptionStatusActive &&
		(sub.CurrentPeriodEnd == nil || sub.CurrentPeriodEnd.After(time.Now()))

	return &dto.SubscriptionResponse{
		Id:               sub.Id,
		PlanName:         planName,
		Status:           string(sub.Status),
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		IsActive:         active,
	}, nil
}
