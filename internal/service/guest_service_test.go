package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"jobreach-be/internal/dto"
	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/contract"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// In-memory repository doubles. Only the methods the guest flows touch
// carry real behavior; the rest of the unit of work stays nil.

type memGuestSessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]*entity.GuestSession
	findCalls int
}

func newMemGuestSessionRepo() *memGuestSessionRepo {
	return &memGuestSessionRepo{sessions: map[string]*entity.GuestSession{}}
}

func (r *memGuestSessionRepo) Create(ctx context.Context, session *entity.GuestSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	cp.CreatedAt = time.Now()
	r.sessions[session.SessionId] = &cp
	return nil
}

func (r *memGuestSessionRepo) FindBySessionId(ctx context.Context, sessionId string) (*entity.GuestSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	session, ok := r.sessions[sessionId]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *memGuestSessionRepo) SavePayload(ctx context.Context, sessionId string, field contract.GuestPayloadField, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch field {
	case contract.GuestFieldProfile:
		session.GuestProfile = payload
	case contract.GuestFieldSummary:
		session.GuestSummary = payload
	case contract.GuestFieldContact:
		session.GuestContact = payload
	case contract.GuestFieldMessages:
		session.GeneratedMessages = payload
	case contract.GuestFieldSelected:
		session.SelectedMessage = payload
	}
	return nil
}

func (r *memGuestSessionRepo) SetSelectedVersion(ctx context.Context, sessionId string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v := version
	session.SelectedVersion = &v
	return nil
}

func (r *memGuestSessionRepo) MarkLinked(ctx context.Context, sessionId string, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	uid := userId
	session.LinkedUserId = &uid
	return nil
}

func (r *memGuestSessionRepo) Delete(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionId)
	return nil
}

type memLinkAttemptRepo struct {
	mu      sync.Mutex
	records map[string]*entity.LinkAttempt
}

func newMemLinkAttemptRepo() *memLinkAttemptRepo {
	return &memLinkAttemptRepo{records: map[string]*entity.LinkAttempt{}}
}

func linkKey(sessionId string, userId uuid.UUID) string {
	return sessionId + "|" + userId.String()
}

func (r *memLinkAttemptRepo) Find(ctx context.Context, sessionId string, userId uuid.UUID) (*entity.LinkAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[linkKey(sessionId, userId)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memLinkAttemptRepo) Upsert(ctx context.Context, attempt *entity.LinkAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *attempt
	r.records[linkKey(attempt.SessionId, attempt.UserId)] = &cp
	return nil
}

func (r *memLinkAttemptRepo) Delete(ctx context.Context, sessionId string, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, linkKey(sessionId, userId))
	return nil
}

func (r *memLinkAttemptRepo) DeleteBySession(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, rec := range r.records {
		if rec.SessionId == sessionId {
			delete(r.records, key)
		}
	}
	return nil
}

type fakeUnitOfWork struct {
	guestRepo   *memGuestSessionRepo
	linkRepo    *memLinkAttemptRepo
	profileRepo *memProfileRepo
	companyRepo *memCompanyRepo
	contactRepo *memContactRepo
	messageRepo *memMessageRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository           { return nil }
func (u *fakeUnitOfWork) GuestSessionRepository() contract.GuestSessionRepository {
	return u.guestRepo
}
func (u *fakeUnitOfWork) LinkAttemptRepository() contract.LinkAttemptRepository { return u.linkRepo }
func (u *fakeUnitOfWork) ProfileRepository() contract.ProfileRepository         { return u.profileRepo }
func (u *fakeUnitOfWork) CompanyRepository() contract.CompanyRepository         { return u.companyRepo }
func (u *fakeUnitOfWork) ContactRepository() contract.ContactRepository         { return u.contactRepo }
func (u *fakeUnitOfWork) InteractionRepository() contract.InteractionRepository { return nil }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository         { return u.messageRepo }
func (u *fakeUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return nil
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newGuestServiceForTest() (IGuestService, *memGuestSessionRepo, store.KV) {
	guestRepo := newMemGuestSessionRepo()
	factory := &fakeRepositoryFactory{uow: &fakeUnitOfWork{
		guestRepo: guestRepo,
		linkRepo:  newMemLinkAttemptRepo(),
	}}
	kv := store.NewMemoryKV(time.Minute, time.Minute)
	return NewGuestService(factory, kv), guestRepo, kv
}

func TestGuestGetOrCreateIsIdempotent(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "")
	assert.NoError(t, err)
	assert.NotEmpty(t, first.SessionId)

	second, err := svc.GetOrCreate(ctx, first.SessionId)
	assert.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)
}

func TestGuestGetOrCreateAdoptsClientSuppliedId(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()
	ctx := context.Background()

	wanted := uuid.New().String()
	res, err := svc.GetOrCreate(ctx, wanted)
	assert.NoError(t, err)
	assert.Equal(t, wanted, res.SessionId)
}

func TestGuestSavePayloadsRoundTrip(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()
	ctx := context.Background()

	session, err := svc.GetOrCreate(ctx, "")
	assert.NoError(t, err)

	profile := &dto.GuestProfilePayload{
		Headline:        "Backend Engineer",
		Location:        "Jakarta",
		YearsExperience: 4,
		Skills:          []string{"go", "postgres"},
	}
	assert.NoError(t, svc.SaveProfile(ctx, session.SessionId, profile))

	contact := &dto.GuestContactPayload{FullName: "Dewi Lestari", Title: "Engineering Manager"}
	assert.NoError(t, svc.SaveContact(ctx, session.SessionId, contact))

	got, err := svc.Get(ctx, session.SessionId)
	assert.NoError(t, err)

	var gotProfile dto.GuestProfilePayload
	assert.NoError(t, json.Unmarshal(got.GuestProfile, &gotProfile))
	assert.Equal(t, profile.Headline, gotProfile.Headline)
	assert.Equal(t, profile.Skills, gotProfile.Skills)

	var gotContact dto.GuestContactPayload
	assert.NoError(t, json.Unmarshal(got.GuestContact, &gotContact))
	assert.Equal(t, "Dewi Lestari", gotContact.FullName)
}

func TestGuestSaveToUnknownSessionFails(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()

	err := svc.SaveProfile(context.Background(), uuid.New().String(), &dto.GuestProfilePayload{Headline: "x"})
	assert.Error(t, err)
}

func TestGuestSelectMessage(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()
	ctx := context.Background()

	session, _ := svc.GetOrCreate(ctx, "")

	messages := []dto.GuestMessagePayload{
		{Subject: "Hi", Body: "first take", Version: 1},
		{Subject: "Hello", Body: "second take", Version: 2},
	}
	assert.NoError(t, svc.SaveMessages(ctx, session.SessionId, messages))

	assert.Error(t, svc.SelectMessage(ctx, session.SessionId, 9), "unknown version must be rejected")
	assert.NoError(t, svc.SelectMessage(ctx, session.SessionId, 2))

	got, err := svc.Get(ctx, session.SessionId)
	assert.NoError(t, err)
	if assert.NotNil(t, got.SelectedVersion) {
		assert.Equal(t, 2, *got.SelectedVersion)
	}

	var selected dto.GuestMessagePayload
	assert.NoError(t, json.Unmarshal(got.SelectedMessage, &selected))
	assert.Equal(t, "second take", selected.Body)
}

func TestGuestGetServesFromCache(t *testing.T) {
	svc, repo, _ := newGuestServiceForTest()
	ctx := context.Background()

	session, _ := svc.GetOrCreate(ctx, "")
	callsAfterCreate := repo.findCalls

	_, err := svc.Get(ctx, session.SessionId)
	assert.NoError(t, err)
	assert.Equal(t, callsAfterCreate, repo.findCalls, "cached read must not hit the repository")
}

func TestGuestClearRemovesSessionAndCache(t *testing.T) {
	svc, _, _ := newGuestServiceForTest()
	ctx := context.Background()

	session, _ := svc.GetOrCreate(ctx, "")
	assert.NoError(t, svc.Clear(ctx, session.SessionId))

	_, err := svc.Get(ctx, session.SessionId)
	assert.Error(t, err)
}
