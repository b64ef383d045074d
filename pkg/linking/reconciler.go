package linking

import (
	"context"
	"sync"
	"time"

	"jobreach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// State of a (sessionID, userID) pair in the linking lifecycle.
type State string

const (
	StateNoSession   State = "NO_SESSION"
	StateUnattempted State = "UNATTEMPTED"
	StateInFlight    State = "IN_FLIGHT"
	StateSucceeded   State = "SUCCEEDED"
	StateFailed      State = "FAILED"
)

// Origin identifies which trigger point invoked the reconciler.
type Origin string

const (
	OriginSignup        Origin = "signup"
	OriginOAuthCallback Origin = "oauth_callback"
	OriginProfileMount  Origin = "profile_mount"
	OriginExplicit      Origin = "explicit"
)

// Attempt is the persisted idempotency record, keyed by the composite
// (sessionID, userID): the same guest session can be linked by different
// accounts, and one user can go through several guest sessions.
type Attempt struct {
	SessionID string
	UserID    uuid.UUID
	Linked    bool
	Success   bool
	Origin    Origin
	Timestamp time.Time

	// Attempts is the cumulative merge-call count for the pair, across
	// reconciler invocations.
	Attempts int
}

// Merger is the remote merge collaborator. LinkGuestProfile must be
// upsert-based server-side, but the reconciler never assumes that; the
// local attempt record stays the primary guard against duplicates.
type Merger interface {
	LinkGuestProfile(ctx context.Context, userID uuid.UUID, sessionID string) error
	MergedDataExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AttemptStore persists Attempt records. MarkSuccess and RecordFailure
// must be upserts on the (sessionID, userID) key so racing writers
// cannot create duplicate rows. A failure record never carries the
// success flag, so the pair stays retryable.
type AttemptStore interface {
	Find(ctx context.Context, sessionID string, userID uuid.UUID) (*Attempt, error)
	MarkSuccess(ctx context.Context, attempt *Attempt) error
	RecordFailure(ctx context.Context, attempt *Attempt) error
	Invalidate(ctx context.Context, sessionID string, userID uuid.UUID) error
}

// Outcome is what a trigger point gets back. Reconcile never returns an
// error: failures degrade to a Failed outcome plus a log line, and the
// caller decides whether to surface anything to the user.
type Outcome struct {
	State    State
	Linked   bool
	Attempts int

	// ShortCircuited is true when the idempotency record satisfied the
	// call without any merge traffic.
	ShortCircuited bool
}

type Option func(*Reconciler)

// WithSleeper substitutes the retry pause, for deterministic tests.
func WithSleeper(s Sleeper) Option {
	return func(r *Reconciler) { r.sleep = s }
}

// WithMergeTimeout bounds each merge call. Timeout counts as a
// retryable failure, never as success.
func WithMergeTimeout(d time.Duration) Option {
	return func(r *Reconciler) { r.mergeTimeout = d }
}

// Reconciler ensures guest-created data is merged into the
// authenticated user's records exactly once per (sessionID, userID),
// tolerating overlapping trigger points and transient merge failures.
type Reconciler struct {
	merger       Merger
	attempts     AttemptStore
	policy       RetryPolicy
	sleep        Sleeper
	mergeTimeout time.Duration
	log          logger.ILogger

	group    singleflight.Group
	inflight sync.Map // key -> struct{}
}

func NewReconciler(merger Merger, attempts AttemptStore, policy RetryPolicy, log logger.ILogger, opts ...Option) *Reconciler {
	r := &Reconciler{
		merger:       merger,
		attempts:     attempts,
		policy:       policy,
		sleep:        defaultSleeper,
		mergeTimeout: 5 * time.Second,
		log:          log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func pairKey(sessionID string, userID uuid.UUID) string {
	return sessionID + "|" + userID.String()
}

// StateOf reports the pair's state without side effects.
func (r *Reconciler) StateOf(ctx context.Context, sessionID string, userID uuid.UUID) State {
	if sessionID == "" || userID == uuid.Nil {
		return StateNoSession
	}
	if _, busy := r.inflight.Load(pairKey(sessionID, userID)); busy {
		return StateInFlight
	}
	rec, err := r.attempts.Find(ctx, sessionID, userID)
	if err != nil || rec == nil {
		return StateUnattempted
	}
	if rec.Success {
		return StateSucceeded
	}
	return StateFailed
}

// Reconcile runs the linking state machine for the pair. Concurrent
// calls for the same pair collapse into a single in-flight attempt and
// share its outcome.
func (r *Reconciler) Reconcile(ctx context.Context, userID uuid.UUID, sessionID string, origin Origin) Outcome {
	// Entry guard: pure-guest and pure-returning-user flows are
	// expected, not errors.
	if sessionID == "" || userID == uuid.Nil {
		return Outcome{State: StateNoSession}
	}

	key := pairKey(sessionID, userID)
	res, _, _ := r.group.Do(key, func() (interface{}, error) {
		r.inflight.Store(key, struct{}{})
		defer r.inflight.Delete(key)
		return r.reconcileOnce(ctx, userID, sessionID, origin), nil
	})
	return res.(Outcome)
}

func (r *Reconciler) reconcileOnce(ctx context.Context, userID uuid.UUID, sessionID string, origin Origin) Outcome {
	// Idempotency check happens-before any mutating call.
	rec, err := r.attempts.Find(ctx, sessionID, userID)
	if err != nil {
		r.log.Warn("Linking", "Attempt lookup failed, proceeding unlinked", map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"error":      err.Error(),
		})
	}

	if rec != nil && rec.Success {
		// Verification-on-trust: the local marker is a cache, not a
		// ledger. A success marker with no merged rows behind it gets
		// invalidated and the pair falls back to unlinked.
		exists, verr := r.merger.MergedDataExists(ctx, userID)
		if verr != nil {
			r.log.Warn("Linking", "Existence check failed, trusting local marker", map[string]interface{}{
				"user_id": userID,
				"error":   verr.Error(),
			})
			return Outcome{State: StateSucceeded, Linked: true, ShortCircuited: true}
		}
		if exists {
			return Outcome{State: StateSucceeded, Linked: true, ShortCircuited: true}
		}

		r.log.Warn("Linking", "Stale success marker, invalidating", map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		})
		if ierr := r.attempts.Invalidate(ctx, sessionID, userID); ierr != nil {
			r.log.Error("Linking", "Failed to invalidate stale marker", map[string]interface{}{
				"session_id": sessionID,
				"user_id":    userID,
				"error":      ierr.Error(),
			})
		}
	}

	prior := 0
	if rec != nil {
		prior = rec.Attempts
	}

	attempts := 0
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		attempts = attempt

		mctx, cancel := context.WithTimeout(ctx, r.mergeTimeout)
		merr := r.merger.LinkGuestProfile(mctx, userID, sessionID)
		cancel()

		if merr == nil {
			if serr := r.attempts.MarkSuccess(ctx, &Attempt{
				SessionID: sessionID,
				UserID:    userID,
				Linked:    true,
				Success:   true,
				Origin:    origin,
				Timestamp: time.Now(),
				Attempts:  prior + attempts,
			}); serr != nil {
				// The merge landed; worst case the next trigger
				// re-checks and short-circuits via the existence check.
				r.log.Error("Linking", "Merge succeeded but marker write failed", map[string]interface{}{
					"session_id": sessionID,
					"user_id":    userID,
					"error":      serr.Error(),
				})
			}
			r.log.Info("Linking", "Guest session linked", map[string]interface{}{
				"session_id": sessionID,
				"user_id":    userID,
				"origin":     origin,
				"attempts":   attempts,
			})
			return Outcome{State: StateSucceeded, Linked: true, Attempts: attempts}
		}

		r.log.Warn("Linking", "Merge attempt failed", map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"attempt":    attempt,
			"error":      merr.Error(),
		})

		if attempt < r.policy.MaxAttempts {
			if serr := r.sleep(ctx, r.policy.Delay(attempt)); serr != nil {
				break
			}
		}
	}

	// A failure record keeps the attempt history without the success
	// flag; the pair stays retryable from the next natural trigger point.
	if ferr := r.attempts.RecordFailure(ctx, &Attempt{
		SessionID: sessionID,
		UserID:    userID,
		Origin:    origin,
		Timestamp: time.Now(),
		Attempts:  prior + attempts,
	}); ferr != nil {
		r.log.Error("Linking", "Failed to record link failure", map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"error":      ferr.Error(),
		})
	}
	return Outcome{State: StateFailed, Attempts: attempts}
}
