package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/repository/contract"
	"jobreach-be/internal/repository/specification"
	"jobreach-be/pkg/linking"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
)

// rowMatches evaluates the specifications the merge paths use against
// one row's owner, name and source session.
func rowMatches(specs []specification.Specification, ownerId uuid.UUID, name string, sourceSessionId *string) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if s.UserID != ownerId {
				return false
			}
		case specification.ByName:
			if s.Name != name {
				return false
			}
		case specification.FilterBy:
			if s.Field == "source_session_id" {
				v, _ := s.Value.(string)
				if sourceSessionId == nil || *sourceSessionId != v {
					return false
				}
			}
		}
	}
	return true
}

type memProfileRepo struct {
	mu        sync.Mutex
	profiles  []*entity.UserProfile
	summaries []*entity.UserSummary
}

func (r *memProfileRepo) UpsertProfile(ctx context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.profiles {
		if p.UserId == profile.UserId {
			r.profiles[i] = profile
			return nil
		}
	}
	r.profiles = append(r.profiles, profile)
	return nil
}

func (r *memProfileRepo) FindProfile(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if rowMatches(specs, p.UserId, "", p.SourceSessionId) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) CountProfiles(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.profiles {
		if rowMatches(specs, p.UserId, "", p.SourceSessionId) {
			count++
		}
	}
	return count, nil
}

func (r *memProfileRepo) DeleteProfile(ctx context.Context, userId uuid.UUID) error { return nil }

func (r *memProfileRepo) UpsertSummary(ctx context.Context, summary *entity.UserSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.summaries {
		if s.UserId == summary.UserId {
			r.summaries[i] = summary
			return nil
		}
	}
	r.summaries = append(r.summaries, summary)
	return nil
}

func (r *memProfileRepo) FindSummary(ctx context.Context, specs ...specification.Specification) (*entity.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.summaries {
		if rowMatches(specs, s.UserId, "", s.SourceSessionId) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) DeleteSummary(ctx context.Context, userId uuid.UUID) error { return nil }

func (r *memProfileRepo) UpsertCriteria(ctx context.Context, criteria *entity.TargetCriteria) error {
	return nil
}

func (r *memProfileRepo) FindCriteria(ctx context.Context, specs ...specification.Specification) (*entity.TargetCriteria, error) {
	return nil, nil
}

func (r *memProfileRepo) DeleteCriteria(ctx context.Context, userId uuid.UUID) error { return nil }

type memCompanyRepo struct {
	mu        sync.Mutex
	companies []*entity.Company
}

func (r *memCompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies = append(r.companies, company)
	return nil
}

func (r *memCompanyRepo) Update(ctx context.Context, company *entity.Company) error { return nil }
func (r *memCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *memCompanyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if rowMatches(specs, c.UserId, c.Name, c.SourceSessionId) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.companies {
		if rowMatches(specs, c.UserId, c.Name, c.SourceSessionId) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCompanyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *memCompanyRepo) UpsertEmbedding(ctx context.Context, companyId uuid.UUID, embedding pgvector.Vector) error {
	return nil
}

func (r *memCompanyRepo) SearchSimilar(ctx context.Context, userId uuid.UUID, query pgvector.Vector, limit int) ([]contract.CompanyMatch, error) {
	return nil, nil
}

type memContactRepo struct {
	mu       sync.Mutex
	contacts []*entity.Contact
}

func (r *memContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, contact)
	return nil
}

func (r *memContactRepo) Update(ctx context.Context, contact *entity.Contact) error { return nil }
func (r *memContactRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *memContactRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if rowMatches(specs, c.UserId, c.FullName, c.SourceSessionId) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memContactRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Contact
	for _, c := range r.contacts {
		if rowMatches(specs, c.UserId, c.FullName, c.SourceSessionId) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContactRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.GeneratedMessage
}

func (r *memMessageRepo) Create(ctx context.Context, message *entity.GeneratedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *memMessageRepo) CreateBatch(ctx context.Context, messages []*entity.GeneratedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, messages...)
	return nil
}

func (r *memMessageRepo) Update(ctx context.Context, message *entity.GeneratedMessage) error {
	return nil
}

func (r *memMessageRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *memMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if rowMatches(specs, m.UserId, "", m.SourceSessionId) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.GeneratedMessage
	for _, m := range r.messages {
		if rowMatches(specs, m.UserId, "", m.SourceSessionId) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) SelectVersion(ctx context.Context, userId, messageId uuid.UUID) error {
	return nil
}

type linkServiceFixture struct {
	svc      *linkService
	guests   *memGuestSessionRepo
	attempts *memLinkAttemptRepo
	profiles *memProfileRepo
	company  *memCompanyRepo
	contacts *memContactRepo
	messages *memMessageRepo
}

func newLinkServiceForTest() *linkServiceFixture {
	f := &linkServiceFixture{
		guests:   newMemGuestSessionRepo(),
		attempts: newMemLinkAttemptRepo(),
		profiles: &memProfileRepo{},
		company:  &memCompanyRepo{},
		contacts: &memContactRepo{},
		messages: &memMessageRepo{},
	}
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{
		guestRepo:   f.guests,
		linkRepo:    f.attempts,
		profileRepo: f.profiles,
		companyRepo: f.company,
		contactRepo: f.contacts,
		messageRepo: f.messages,
	}}
	f.svc = NewLinkService(factory, linking.DefaultRetryPolicy(), nil, nil, logger.NopLogger{}).(*linkService)
	return f
}

func (f *linkServiceFixture) seedSession(t *testing.T, session *entity.GuestSession) {
	t.Helper()
	assert.NoError(t, f.guests.Create(context.Background(), session))
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	assert.NoError(t, err)
	return raw
}

func TestLinkMergesFullGuestSession(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	selected := 2
	f.seedSession(t, &entity.GuestSession{
		SessionId: sessionId,
		GuestProfile: mustJSON(t, dto.GuestProfilePayload{
			Headline: "Backend Engineer",
			Location: "Jakarta",
			Skills:   []string{"go"},
		}),
		GuestSummary: mustJSON(t, dto.GuestSummaryPayload{Summary: "Builds reliable backends.", Version: 1}),
		GuestContact: mustJSON(t, dto.GuestContactPayload{
			FullName:    "Dewi Lestari",
			Title:       "Engineering Manager",
			CompanyName: "Acme Corp",
		}),
		GeneratedMessages: mustJSON(t, []dto.GuestMessagePayload{
			{Subject: "Hi", Body: "first take", Version: 1},
			{Subject: "Hello", Body: "second take", Version: 2},
		}),
		SelectedVersion: &selected,
	})

	assert.NoError(t, f.svc.LinkGuestProfile(ctx, userId, sessionId))

	if assert.Len(t, f.profiles.profiles, 1) {
		profile := f.profiles.profiles[0]
		assert.Equal(t, userId, profile.UserId)
		assert.Equal(t, "Backend Engineer", profile.Headline)
		if assert.NotNil(t, profile.SourceSessionId) {
			assert.Equal(t, sessionId, *profile.SourceSessionId)
		}
	}
	assert.Len(t, f.profiles.summaries, 1)

	if assert.Len(t, f.company.companies, 1) {
		assert.Equal(t, "Acme Corp", f.company.companies[0].Name)
		assert.Equal(t, entity.CompanyStatusSaved, f.company.companies[0].Status)
	}
	if assert.Len(t, f.contacts.contacts, 1) {
		contact := f.contacts.contacts[0]
		assert.Equal(t, "Dewi Lestari", contact.FullName)
		if assert.NotNil(t, contact.CompanyId) {
			assert.Equal(t, f.company.companies[0].Id, *contact.CompanyId)
		}
	}

	if assert.Len(t, f.messages.messages, 2) {
		for _, m := range f.messages.messages {
			assert.Equal(t, m.Version == selected, m.Selected)
			if assert.NotNil(t, m.ContactId) {
				assert.Equal(t, f.contacts.contacts[0].Id, *m.ContactId)
			}
		}
	}

	session, _ := f.guests.FindBySessionId(ctx, sessionId)
	if assert.NotNil(t, session.LinkedUserId) {
		assert.Equal(t, userId, *session.LinkedUserId)
	}
}

func TestLinkSkipsEmptyPayloads(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	f.seedSession(t, &entity.GuestSession{SessionId: sessionId})

	assert.NoError(t, f.svc.LinkGuestProfile(ctx, userId, sessionId))

	assert.Empty(t, f.profiles.profiles)
	assert.Empty(t, f.profiles.summaries)
	assert.Empty(t, f.contacts.contacts)
	assert.Empty(t, f.messages.messages)

	// The session is still marked linked so the pair stops retriggering.
	session, _ := f.guests.FindBySessionId(ctx, sessionId)
	assert.NotNil(t, session.LinkedUserId)
}

func TestLinkReusesExistingCompany(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	existing := &entity.Company{Id: uuid.New(), UserId: userId, Name: "Acme Corp", Status: entity.CompanyStatusSaved}
	assert.NoError(t, f.company.Create(ctx, existing))

	f.seedSession(t, &entity.GuestSession{
		SessionId:    sessionId,
		GuestContact: mustJSON(t, dto.GuestContactPayload{FullName: "Dewi Lestari", CompanyName: "Acme Corp"}),
	})

	assert.NoError(t, f.svc.LinkGuestProfile(ctx, userId, sessionId))

	assert.Len(t, f.company.companies, 1)
	if assert.Len(t, f.contacts.contacts, 1) && assert.NotNil(t, f.contacts.contacts[0].CompanyId) {
		assert.Equal(t, existing.Id, *f.contacts.contacts[0].CompanyId)
	}
}

func TestLinkSkipsAlreadyMergedContact(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	sid := sessionId
	assert.NoError(t, f.contacts.Create(ctx, &entity.Contact{
		Id:              uuid.New(),
		UserId:          userId,
		FullName:        "Dewi Lestari",
		SourceSessionId: &sid,
	}))

	f.seedSession(t, &entity.GuestSession{
		SessionId:    sessionId,
		GuestContact: mustJSON(t, dto.GuestContactPayload{FullName: "Dewi Lestari", CompanyName: "Acme Corp"}),
	})

	assert.NoError(t, f.svc.LinkGuestProfile(ctx, userId, sessionId))

	// Re-running the merge must not duplicate rows sourced from the
	// same session.
	assert.Len(t, f.contacts.contacts, 1)
	assert.Empty(t, f.company.companies)
}

func TestLinkSkipsAlreadyMergedMessages(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	sid := sessionId
	assert.NoError(t, f.messages.Create(ctx, &entity.GeneratedMessage{
		Id:              uuid.New(),
		UserId:          userId,
		Body:            "already merged",
		Version:         1,
		SourceSessionId: &sid,
	}))

	f.seedSession(t, &entity.GuestSession{
		SessionId: sessionId,
		GeneratedMessages: mustJSON(t, []dto.GuestMessagePayload{
			{Subject: "Hi", Body: "first take", Version: 1},
		}),
	})

	assert.NoError(t, f.svc.LinkGuestProfile(ctx, userId, sessionId))
	assert.Len(t, f.messages.messages, 1)
}

func TestLinkUnknownSessionFails(t *testing.T) {
	f := newLinkServiceForTest()

	err := f.svc.LinkGuestProfile(context.Background(), uuid.New(), uuid.New().String())
	assert.Error(t, err)
}

func TestLinkMergedDataExists(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	exists, err := f.svc.MergedDataExists(ctx, userId)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, f.profiles.UpsertProfile(ctx, &entity.UserProfile{Id: uuid.New(), UserId: userId}))

	exists, err = f.svc.MergedDataExists(ctx, userId)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestLinkStatusReportsAttemptHistory(t *testing.T) {
	f := newLinkServiceForTest()
	ctx := context.Background()

	userId := uuid.New()
	sessionId := uuid.New().String()
	assert.NoError(t, f.attempts.Upsert(ctx, &entity.LinkAttempt{
		Id:        uuid.New(),
		SessionId: sessionId,
		UserId:    userId,
		Origin:    string(linking.OriginExplicit),
		Linked:    true,
		Success:   true,
		Attempts:  3,
		UpdatedAt: time.Now(),
	}))

	resp, err := f.svc.Status(ctx, userId, sessionId)
	assert.NoError(t, err)
	assert.True(t, resp.Linked)
	assert.Equal(t, 3, resp.Attempts)
	assert.NotNil(t, resp.LinkedAt)
}
