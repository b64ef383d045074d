package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pgvector/pgvector-go"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload dto.EmbedCompanyMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("Consumer", "Failed to unmarshal embedding job", map[string]interface{}{
			"error": err.Error(),
		})
		// Malformed payloads never become valid, ack so they stop retrying.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: payload.CompanyId})
	if err != nil {
		cs.log.Error("Consumer", "Failed to load company for embedding", map[string]interface{}{
			"company_id": payload.CompanyId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if company == nil {
		// Deleted between enqueue and processing.
		msg.Ack()
		return
	}

	text := companyEmbeddingText(company.Name, company.Industry, company.Size, company.Location, company.Rationale)

	res, err := cs.embeddingProvider.Generate(text, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.log.Error("Consumer", "Failed to generate company embedding", map[string]interface{}{
			"company_id": payload.CompanyId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	vector := pgvector.NewVector(res.Embedding.Values)
	if err := uow.CompanyRepository().UpsertEmbedding(ctx, company.Id, vector); err != nil {
		cs.log.Error("Consumer", "Failed to store company embedding", map[string]interface{}{
			"company_id": payload.CompanyId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("Consumer", "Company embedding stored", map[string]interface{}{
		"company_id": payload.CompanyId,
	})
	msg.Ack()
}

func companyEmbeddingText(name, industry, size, location, rationale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", name)
	if industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", industry)
	}
	if size != "" {
		fmt.Fprintf(&b, "Size: %s\n", size)
	}
	if location != "" {
		fmt.Fprintf(&b, "Location: %s\n", location)
	}
	if rationale != "" {
		fmt.Fprintf(&b, "Why it fits: %s\n", rationale)
	}
	return b.String()
}
