package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"jobreach-be/internal/constant"
	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/embedding"
	"jobreach-be/pkg/genai"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type IGenerationService interface {
	// GenerateSummaryForUser builds the summary from the stored profile
	// and persists it as the next summary version.
	GenerateSummaryForUser(ctx context.Context, userId uuid.UUID, req *dto.GenerateSummaryRequest) (*dto.GenerateSummaryResponse, error)
	// GenerateSummaryForGuest reads the guest profile payload and writes
	// the result back onto the session.
	GenerateSummaryForGuest(ctx context.Context, sessionId string, req *dto.GenerateSummaryRequest) (*dto.GenerateSummaryResponse, error)
	GenerateCompanies(ctx context.Context, userId uuid.UUID, req *dto.GenerateCompaniesRequest) (*dto.GenerateCompaniesResponse, error)
	GenerateMessagesForUser(ctx context.Context, userId uuid.UUID, req *dto.GenerateMessagesRequest) (*dto.GenerateMessagesResponse, error)
	GenerateMessagesForGuest(ctx context.Context, sessionId string, req *dto.GenerateMessagesRequest) (*dto.GenerateMessagesResponse, error)
	MatchCompanies(ctx context.Context, userId uuid.UUID, req *dto.MatchCompaniesRequest) ([]*dto.MatchedCompanyResponse, error)
}

type generationService struct {
	uowFactory       unitofwork.RepositoryFactory
	ai               *genai.Client
	embedder         embedding.EmbeddingProvider
	guestService     IGuestService
	publisherService IPublisherService
	log              logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	ai *genai.Client,
	embedder embedding.EmbeddingProvider,
	guestService IGuestService,
	publisherService IPublisherService,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:       uowFactory,
		ai:               ai,
		embedder:         embedder,
		guestService:     guestService,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *generationService) GenerateSummaryForUser(ctx context.Context, userId uuid.UUID, req *dto.GenerateSummaryRequest) (*dto.GenerateSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindProfile(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found; save a profile before generating a summary")
	}

	summaryText, err := s.generateSummaryText(ctx, tone(req), profile.Headline, profile.Location, profile.YearsExperience, profile.Skills, profile.Experience)
	if err != nil {
		return nil, err
	}

	summary := &entity.UserSummary{
		Id:      uuid.New(),
		UserId:  userId,
		Summary: summaryText,
	}
	if err := uow.ProfileRepository().UpsertSummary(ctx, summary); err != nil {
		return nil, err
	}

	return &dto.GenerateSummaryResponse{Summary: summary.Summary, Version: summary.Version}, nil
}

func (s *generationService) GenerateSummaryForGuest(ctx context.Context, sessionId string, req *dto.GenerateSummaryRequest) (*dto.GenerateSummaryResponse, error) {
	session, err := s.guestService.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.GuestProfile) == 0 {
		return nil, errors.New("guest profile is empty; save a profile before generating a summary")
	}

	var profile dto.GuestProfilePayload
	if err := json.Unmarshal(session.GuestProfile, &profile); err != nil {
		return nil, errors.New("malformed guest profile payload")
	}

	summaryText, err := s.generateSummaryText(ctx, tone(req), profile.Headline, profile.Location, profile.YearsExperience, profile.Skills, profile.Experience)
	if err != nil {
		return nil, err
	}

	version := 1
	if len(session.GuestSummary) > 0 {
		var prev dto.GuestSummaryPayload
		if err := json.Unmarshal(session.GuestSummary, &prev); err == nil {
			version = prev.Version + 1
		}
	}

	payload := &dto.GuestSummaryPayload{Summary: summaryText, Version: version}
	if err := s.guestService.SaveSummary(ctx, sessionId, payload); err != nil {
		return nil, err
	}

	return &dto.GenerateSummaryResponse{Summary: summaryText, Version: version}, nil
}

func (s *generationService) GenerateCompanies(ctx context.Context, userId uuid.UUID, req *dto.GenerateCompaniesRequest) (*dto.GenerateCompaniesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.ProfileRepository().FindSummary(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.New("summary not found; generate a summary first")
	}

	criteria, err := uow.ProfileRepository().FindCriteria(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		criteria = &entity.TargetCriteria{}
	}

	count := req.Count
	if count <= 0 {
		count = constant.DefaultCompanyCount
	}

	prompt := fmt.Sprintf(constant.CompanySuggestionPromptV1,
		count,
		summary.Summary,
		joinOrAny(criteria.Roles),
		joinOrAny(criteria.Industries),
		joinOrAny(criteria.CompanySizes),
		joinOrAny(criteria.Locations),
		joinOrNone(criteria.ExcludedNames),
	)

	raw, err := s.ai.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggestions []dto.GeneratedCompany
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("model returned unparseable company list: %w", err)
	}

	excluded := make(map[string]bool, len(criteria.ExcludedNames))
	for _, name := range criteria.ExcludedNames {
		excluded[strings.ToLower(name)] = true
	}

	kept := make([]dto.GeneratedCompany, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.Name == "" || excluded[strings.ToLower(suggestion.Name)] {
			continue
		}

		existing, err := uow.CompanyRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByName{Name: suggestion.Name},
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}

		company := &entity.Company{
			Id:        uuid.New(),
			UserId:    userId,
			Name:      suggestion.Name,
			Industry:  suggestion.Industry,
			Size:      suggestion.Size,
			Location:  suggestion.Location,
			Rationale: suggestion.Rationale,
			Status:    entity.CompanyStatusSuggested,
		}
		if err := uow.CompanyRepository().Create(ctx, company); err != nil {
			return nil, err
		}
		kept = append(kept, suggestion)

		// Embedding happens off the request path.
		if s.publisherService != nil {
			payload, _ := json.Marshal(dto.EmbedCompanyMessage{CompanyId: company.Id, UserId: userId})
			if perr := s.publisherService.Publish(ctx, payload); perr != nil {
				s.log.Warn("Generation", "Failed to enqueue company embedding", map[string]interface{}{
					"company_id": company.Id,
					"error":      perr.Error(),
				})
			}
		}
	}

	return &dto.GenerateCompaniesResponse{Companies: kept}, nil
}

func (s *generationService) GenerateMessagesForUser(ctx context.Context, userId uuid.UUID, req *dto.GenerateMessagesRequest) (*dto.GenerateMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.ProfileRepository().FindSummary(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.New("summary not found; generate a summary first")
	}

	recipientName, recipientTitle, recipientCompany := "the hiring contact", "", ""
	if req.ContactId != nil {
		contact, err := uow.ContactRepository().FindOne(ctx,
			specification.ByID{ID: *req.ContactId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, errors.New("contact not found")
		}
		recipientName = contact.FullName
		recipientTitle = contact.Title
		if contact.CompanyId != nil {
			company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: *contact.CompanyId})
			if err == nil && company != nil {
				recipientCompany = company.Name
			}
		}
	}

	versions, err := s.generateMessageVersions(ctx, req, summary.Summary, recipientName, recipientTitle, recipientCompany)
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.GeneratedMessage, len(versions))
	for i, v := range versions {
		messages[i] = &entity.GeneratedMessage{
			Id:        uuid.New(),
			UserId:    userId,
			ContactId: req.ContactId,
			Subject:   v.Subject,
			Body:      v.Body,
			Version:   v.Version,
		}
	}
	if err := uow.MessageRepository().CreateBatch(ctx, messages); err != nil {
		return nil, err
	}

	return &dto.GenerateMessagesResponse{Messages: versions}, nil
}

func (s *generationService) GenerateMessagesForGuest(ctx context.Context, sessionId string, req *dto.GenerateMessagesRequest) (*dto.GenerateMessagesResponse, error) {
	session, err := s.guestService.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.GuestSummary) == 0 {
		return nil, errors.New("guest summary is empty; generate a summary first")
	}

	var summary dto.GuestSummaryPayload
	if err := json.Unmarshal(session.GuestSummary, &summary); err != nil {
		return nil, errors.New("malformed guest summary payload")
	}

	recipientName, recipientTitle, recipientCompany := "the hiring contact", "", ""
	if len(session.GuestContact) > 0 {
		var contact dto.GuestContactPayload
		if err := json.Unmarshal(session.GuestContact, &contact); err == nil {
			recipientName = contact.FullName
			recipientTitle = contact.Title
			recipientCompany = contact.CompanyName
		}
	}

	versions, err := s.generateMessageVersions(ctx, req, summary.Summary, recipientName, recipientTitle, recipientCompany)
	if err != nil {
		return nil, err
	}

	payloads := make([]dto.GuestMessagePayload, len(versions))
	for i, v := range versions {
		payloads[i] = dto.GuestMessagePayload{Subject: v.Subject, Body: v.Body, Version: v.Version}
	}
	if err := s.guestService.SaveMessages(ctx, sessionId, payloads); err != nil {
		return nil, err
	}

	return &dto.GenerateMessagesResponse{Messages: versions}, nil
}

func (s *generationService) MatchCompanies(ctx context.Context, userId uuid.UUID, req *dto.MatchCompaniesRequest) ([]*dto.MatchedCompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	embedded, err := s.embedder.Generate(req.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	queryVector := pgvector.NewVector(embedded.Embedding.Values)

	matches, err := uow.CompanyRepository().SearchSimilar(ctx, userId, queryVector, req.Limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MatchedCompanyResponse, len(matches))
	for i, match := range matches {
		result[i] = &dto.MatchedCompanyResponse{
			CompanyResponse: *companyToResponse(match.Company),
			Similarity:      1 - match.Distance,
		}
	}
	return result, nil
}

func (s *generationService) generateSummaryText(ctx context.Context, tone, headline, location string, years int, skills []string, experience string) (string, error) {
	prompt := fmt.Sprintf(constant.SummaryPromptV1,
		tone, headline, location, years, strings.Join(skills, ", "), experience)

	text, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *generationService) generateMessageVersions(ctx context.Context, req *dto.GenerateMessagesRequest, summary, name, title, company string) ([]dto.GeneratedMessageVersion, error) {
	count := req.Versions
	if count <= 0 {
		count = constant.DefaultMessageCount
	}

	prompt := fmt.Sprintf(constant.OutreachMessagePromptV1,
		count, toneValue(req.Tone), summary, name, title, company)

	raw, err := s.ai.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var versions []dto.GeneratedMessageVersion
	if err := json.Unmarshal(raw, &versions); err != nil {
		return nil, fmt.Errorf("model returned unparseable message list: %w", err)
	}
	for i := range versions {
		if versions[i].Version == 0 {
			versions[i].Version = i + 1
		}
	}
	return versions, nil
}

func tone(req *dto.GenerateSummaryRequest) string {
	if req != nil && req.Tone != "" {
		return req.Tone
	}
	return constant.DefaultTone
}

func toneValue(t string) string {
	if t == "" {
		return constant.DefaultTone
	}
	return t
}

func joinOrAny(values []string) string {
	if len(values) == 0 {
		return "any"
	}
	return strings.Join(values, ", ")
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
