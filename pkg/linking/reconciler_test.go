package linking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobreach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeMerger struct {
	mu         sync.Mutex
	linkCalls  int32
	failFirst  int
	linkErr    error
	dataExists bool
	existsErr  error
	linkDelay  time.Duration
}

func (m *fakeMerger) LinkGuestProfile(ctx context.Context, userID uuid.UUID, sessionID string) error {
	n := atomic.AddInt32(&m.linkCalls, 1)
	if m.linkDelay > 0 {
		select {
		case <-time.After(m.linkDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkErr != nil {
		return m.linkErr
	}
	if int(n) <= m.failFirst {
		return errors.New("merge backend unavailable")
	}
	m.dataExists = true
	return nil
}

func (m *fakeMerger) MergedDataExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dataExists, m.existsErr
}

type fakeAttemptStore struct {
	mu       sync.Mutex
	records  map[string]*Attempt
	saveErr  error
	findErr  error
	invCalls int
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{records: map[string]*Attempt{}}
}

func (s *fakeAttemptStore) key(sessionID string, userID uuid.UUID) string {
	return sessionID + "|" + userID.String()
}

func (s *fakeAttemptStore) Find(ctx context.Context, sessionID string, userID uuid.UUID) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	rec, ok := s.records[s.key(sessionID, userID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeAttemptStore) MarkSuccess(ctx context.Context, attempt *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *attempt
	s.records[s.key(attempt.SessionID, attempt.UserID)] = &cp
	return nil
}

func (s *fakeAttemptStore) RecordFailure(ctx context.Context, attempt *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *attempt
	cp.Success = false
	cp.Linked = false
	s.records[s.key(attempt.SessionID, attempt.UserID)] = &cp
	return nil
}

func (s *fakeAttemptStore) Invalidate(ctx context.Context, sessionID string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invCalls++
	if rec, ok := s.records[s.key(sessionID, userID)]; ok {
		rec.Success = false
		rec.Linked = false
	}
	return nil
}

func instantSleeper(ctx context.Context, d time.Duration) error { return nil }

func newTestReconciler(merger Merger, store AttemptStore, policy RetryPolicy) *Reconciler {
	return NewReconciler(merger, store, policy, logger.NopLogger{}, WithSleeper(instantSleeper))
}

func TestReconcileNoSessionGuard(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	tests := []struct {
		name      string
		userID    uuid.UUID
		sessionID string
	}{
		{"empty session id", uuid.New(), ""},
		{"nil user id", uuid.Nil, uuid.New().String()},
		{"both empty", uuid.Nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Reconcile(context.Background(), tt.userID, tt.sessionID, OriginSignup)
			assert.Equal(t, StateNoSession, out.State)
			assert.False(t, out.Linked)
			assert.Zero(t, atomic.LoadInt32(&merger.linkCalls))
		})
	}
}

func TestReconcileLinksOnFirstAttempt(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	out := r.Reconcile(context.Background(), userID, sessionID, OriginSignup)

	assert.Equal(t, StateSucceeded, out.State)
	assert.True(t, out.Linked)
	assert.Equal(t, 1, out.Attempts)
	assert.False(t, out.ShortCircuited)

	rec, err := store.Find(context.Background(), sessionID, userID)
	assert.NoError(t, err)
	if assert.NotNil(t, rec) {
		assert.True(t, rec.Success)
		assert.Equal(t, OriginSignup, rec.Origin)
	}
}

func TestReconcileShortCircuitsOnSecondCall(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	first := r.Reconcile(context.Background(), userID, sessionID, OriginSignup)
	assert.False(t, first.ShortCircuited)

	second := r.Reconcile(context.Background(), userID, sessionID, OriginProfileMount)
	assert.Equal(t, StateSucceeded, second.State)
	assert.True(t, second.Linked)
	assert.True(t, second.ShortCircuited)

	// One merge call total; the second trigger never touched the merger.
	assert.Equal(t, int32(1), atomic.LoadInt32(&merger.linkCalls))
}

func TestReconcileRetriesThenGivesUp(t *testing.T) {
	merger := &fakeMerger{linkErr: errors.New("merge backend down")}
	store := newFakeAttemptStore()
	policy := RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	r := newTestReconciler(merger, store, policy)

	userID := uuid.New()
	sessionID := uuid.New().String()

	out := r.Reconcile(context.Background(), userID, sessionID, OriginExplicit)

	assert.Equal(t, StateFailed, out.State)
	assert.False(t, out.Linked)
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, int32(2), atomic.LoadInt32(&merger.linkCalls))

	// The failure is recorded without the success flag; the pair stays retryable.
	rec, _ := store.Find(context.Background(), sessionID, userID)
	if assert.NotNil(t, rec) {
		assert.False(t, rec.Success)
		assert.Equal(t, 2, rec.Attempts)
	}
}

func TestReconcileAccumulatesAttemptHistory(t *testing.T) {
	merger := &fakeMerger{linkErr: errors.New("merge backend down")}
	store := newFakeAttemptStore()
	policy := RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	r := newTestReconciler(merger, store, policy)

	userID := uuid.New()
	sessionID := uuid.New().String()

	first := r.Reconcile(context.Background(), userID, sessionID, OriginSignup)
	assert.Equal(t, StateFailed, first.State)

	rec, _ := store.Find(context.Background(), sessionID, userID)
	if assert.NotNil(t, rec) {
		assert.Equal(t, 2, rec.Attempts)
	}

	merger.mu.Lock()
	merger.linkErr = nil
	merger.mu.Unlock()

	second := r.Reconcile(context.Background(), userID, sessionID, OriginProfileMount)
	assert.Equal(t, StateSucceeded, second.State)
	assert.Equal(t, 1, second.Attempts)

	// The persisted count carries the earlier failures forward.
	rec, _ = store.Find(context.Background(), sessionID, userID)
	if assert.NotNil(t, rec) {
		assert.True(t, rec.Success)
		assert.Equal(t, 3, rec.Attempts)
	}
}

func TestReconcileRecoversAfterTransientFailure(t *testing.T) {
	merger := &fakeMerger{failFirst: 1}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	out := r.Reconcile(context.Background(), uuid.New(), uuid.New().String(), OriginOAuthCallback)

	assert.Equal(t, StateSucceeded, out.State)
	assert.Equal(t, 2, out.Attempts)
}

func TestReconcileInvalidatesStaleSuccessMarker(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	// Marker says linked but the merger has no rows behind it.
	store.MarkSuccess(context.Background(), &Attempt{
		SessionID: sessionID,
		UserID:    userID,
		Linked:    true,
		Success:   true,
		Origin:    OriginSignup,
		Timestamp: time.Now(),
	})

	out := r.Reconcile(context.Background(), userID, sessionID, OriginProfileMount)

	assert.Equal(t, StateSucceeded, out.State)
	assert.False(t, out.ShortCircuited)
	assert.Equal(t, 1, store.invCalls)
	assert.Equal(t, int32(1), atomic.LoadInt32(&merger.linkCalls))
}

func TestReconcileTrustsMarkerWhenExistenceCheckErrs(t *testing.T) {
	merger := &fakeMerger{existsErr: errors.New("backend flaking")}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	store.MarkSuccess(context.Background(), &Attempt{
		SessionID: sessionID,
		UserID:    userID,
		Success:   true,
	})

	out := r.Reconcile(context.Background(), userID, sessionID, OriginExplicit)

	assert.True(t, out.ShortCircuited)
	assert.True(t, out.Linked)
	assert.Zero(t, atomic.LoadInt32(&merger.linkCalls))
}

func TestReconcileSurvivesMarkerWriteFailure(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	store.saveErr = errors.New("disk full")
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	out := r.Reconcile(context.Background(), uuid.New(), uuid.New().String(), OriginSignup)

	// The merge landed; the outcome reports success even though the
	// marker write failed.
	assert.Equal(t, StateSucceeded, out.State)
	assert.True(t, out.Linked)
}

func TestReconcileConcurrentCallsCollapse(t *testing.T) {
	merger := &fakeMerger{linkDelay: 20 * time.Millisecond}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	const callers = 8
	outcomes := make([]Outcome, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = r.Reconcile(context.Background(), userID, sessionID, OriginProfileMount)
		}(i)
	}
	wg.Wait()

	for _, out := range outcomes {
		assert.Equal(t, StateSucceeded, out.State)
		assert.True(t, out.Linked)
	}
	// All concurrent callers shared one merge.
	assert.Equal(t, int32(1), atomic.LoadInt32(&merger.linkCalls))
}

func TestReconcileDifferentUsersSameSession(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	sessionID := uuid.New().String()
	userA := uuid.New()
	userB := uuid.New()

	outA := r.Reconcile(context.Background(), userA, sessionID, OriginSignup)
	outB := r.Reconcile(context.Background(), userB, sessionID, OriginSignup)

	assert.True(t, outA.Linked)
	assert.True(t, outB.Linked)
	assert.Equal(t, int32(2), atomic.LoadInt32(&merger.linkCalls))
}

func TestStateOf(t *testing.T) {
	merger := &fakeMerger{}
	store := newFakeAttemptStore()
	r := newTestReconciler(merger, store, DefaultRetryPolicy())

	userID := uuid.New()
	sessionID := uuid.New().String()

	assert.Equal(t, StateNoSession, r.StateOf(context.Background(), "", userID))
	assert.Equal(t, StateUnattempted, r.StateOf(context.Background(), sessionID, userID))

	r.Reconcile(context.Background(), userID, sessionID, OriginSignup)
	assert.Equal(t, StateSucceeded, r.StateOf(context.Background(), sessionID, userID))

	store.Invalidate(context.Background(), sessionID, userID)
	assert.Equal(t, StateFailed, r.StateOf(context.Background(), sessionID, userID))
}

func TestMergeTimeoutCountsAsFailure(t *testing.T) {
	merger := &fakeMerger{linkDelay: 50 * time.Millisecond}
	store := newFakeAttemptStore()
	policy := RetryPolicy{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	r := NewReconciler(merger, store, policy, logger.NopLogger{},
		WithSleeper(instantSleeper),
		WithMergeTimeout(5*time.Millisecond),
	)

	out := r.Reconcile(context.Background(), uuid.New(), uuid.New().String(), OriginSignup)

	assert.Equal(t, StateFailed, out.State)
	assert.False(t, out.Linked)
}
