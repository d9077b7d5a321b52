package usecase

import (
	"context"
	"sync"
	"time"

	"go-landing-page/internal/domain"
	"go-landing-page/pkg/logger"

	"github.com/google/uuid"
)

// DefaultFormSessionTTL is how long an untouched form instance stays mounted
const DefaultFormSessionTTL = 30 * time.Minute

// DefaultMaxFormSessions caps the mounted instances; Open evicts the least
// recently seen idle instance once the cap is reached.
const DefaultMaxFormSessions = 10000

type formSession struct {
	ctrl     *ContactFormController
	lastSeen time.Time
}

// FormSessions keeps the live contact form instances of rendered pages.
// A session that is not touched within the TTL is treated as unmounted: its
// controller is closed and it is dropped.
type FormSessions struct {
	submitter     domain.Submitter
	ttl           time.Duration
	submitTimeout time.Duration
	maxSessions   int
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*formSession
}

// FormSessionsOption configures a FormSessions registry
type FormSessionsOption func(*FormSessions)

// WithMaxSessions overrides DefaultMaxFormSessions
func WithMaxSessions(n int) FormSessionsOption {
	return func(s *FormSessions) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewFormSessions creates an empty registry
func NewFormSessions(submitter domain.Submitter, ttl, submitTimeout time.Duration, opts ...FormSessionsOption) *FormSessions {
	if ttl <= 0 {
		ttl = DefaultFormSessionTTL
	}
	s := &FormSessions{
		submitter:     submitter,
		ttl:           ttl,
		submitTimeout: submitTimeout,
		maxSessions:   DefaultMaxFormSessions,
		now:           time.Now,
		sessions:      make(map[string]*formSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open mounts a new form instance for cfg and returns its controller.
// A successful submission refreshes the session so the thank-you state
// stays visible for a full TTL.
func (s *FormSessions) Open(cfg *domain.SiteConfig) *ContactFormController {
	id := uuid.NewString()
	ctrl := NewContactFormController(cfg, s.submitter,
		WithFormID(id),
		WithSubmitTimeout(s.submitTimeout),
		WithSuccessCallback(func(domain.ContactDraft) {
			s.touch(id)
			logger.Log.Info("contact form submitted", "form_id", id, "site", cfg.DomainName)
		}),
	)

	s.mu.Lock()
	var evicted *ContactFormController
	if len(s.sessions) >= s.maxSessions {
		evicted = s.evictOldestLocked()
	}
	s.sessions[id] = &formSession{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	if evicted != nil {
		evicted.Close()
	}
	return ctrl
}

// evictOldestLocked drops the least recently seen session without a
// submission in flight. It returns nil when every session is pending.
func (s *FormSessions) evictOldestLocked() *ContactFormController {
	var oldestID string
	var oldest *formSession
	for id, sess := range s.sessions {
		if sess.ctrl.pending() {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	if oldest == nil {
		return nil
	}
	delete(s.sessions, oldestID)
	return oldest.ctrl
}

func (s *FormSessions) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
	}
}

// Get returns the controller for id and marks the session as seen
func (s *FormSessions) Get(id string) (*ContactFormController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Close unmounts a single form instance
func (s *FormSessions) Close(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.ctrl.Close()
	}
}

// Len returns the number of mounted form instances
func (s *FormSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and drops expired sessions and returns how many it removed.
// A session with a submission in flight is kept until it resolves.
func (s *FormSessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*ContactFormController
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) || sess.ctrl.pending() {
			continue
		}
		expired = append(expired, sess.ctrl)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, ctrl := range expired {
		ctrl.Close()
	}
	return len(expired)
}

// CloseAll unmounts every form instance, aborting in-flight submissions
func (s *FormSessions) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*formSession)
	s.mu.Unlock()

	for _, sess := range all {
		sess.ctrl.Close()
	}
}

// Run sweeps on every interval until ctx is done, then closes all sessions
func (s *FormSessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Log.Debug("expired contact form sessions", "count", n)
			}
		}
	}
}
