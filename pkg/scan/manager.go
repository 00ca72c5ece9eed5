package scan

import (
	"Product-Scanner/domain"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jonboulle/clockwork"
)

// EngineFactory builds the decode engine for one user's session.
type EngineFactory func(userID string) DecodeEngine

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Manager keeps one Controller per user, created on first use.
type Manager struct {
	template  Options
	newEngine EngineFactory
	clock     clockwork.Clock

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool

	janitorStop chan struct{}
	janitorDone chan struct{}
}

// NewManager uses template for every session; its UserID and Engine are
// replaced per user.
func NewManager(template Options, newEngine EngineFactory) *Manager {
	clock := template.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		template:  template,
		newEngine: newEngine,
		clock:     clock,
		sessions:  make(map[string]*session),
	}
}

func (m *Manager) Session(userID string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, domain.ErrSessionDisposed
	}
	if s, ok := m.sessions[userID]; ok {
		s.lastSeen = m.clock.Now()
		return s.ctrl, nil
	}

	opts := m.template
	opts.UserID = userID
	opts.Engine = m.newEngine(userID)
	c := NewController(opts)
	m.sessions[userID] = &session{ctrl: c, lastSeen: m.clock.Now()}

	log.Infow("scan session created", "user_id", userID)
	return c, nil
}

// Peek returns the user's session without creating one.
func (m *Manager) Peek(userID string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	s.lastSeen = m.clock.Now()
	return s.ctrl, true
}

// Touch marks the user's session as in use. It reports whether one exists.
func (m *Manager) Touch(userID string) bool {
	_, ok := m.Peek(userID)
	return ok
}

// Dispose tears down the user's session. The next Session call starts fresh.
func (m *Manager) Dispose(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.ctrl.Dispose()
		log.Infow("scan session disposed", "user_id", userID)
	}
}

// ExpireIdle disposes every session not used for longer than ttl and returns
// the users it dropped.
func (m *Manager) ExpireIdle(ttl time.Duration) []string {
	m.mu.Lock()
	now := m.clock.Now()
	var expired []*Controller
	var users []string
	for userID, s := range m.sessions {
		if now.Sub(s.lastSeen) > ttl {
			expired = append(expired, s.ctrl)
			users = append(users, userID)
			delete(m.sessions, userID)
		}
	}
	m.mu.Unlock()

	for i, c := range expired {
		c.Dispose()
		log.Infow("scan session expired", "user_id", users[i], "ttl", ttl)
	}
	return users
}

// StartJanitor expires idle sessions every ttl/2 until Close. onExpire runs
// for each dropped user and may be nil.
func (m *Manager) StartJanitor(ttl time.Duration, onExpire func(userID string)) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.janitorStop != nil {
		return
	}

	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	m.janitorStop = make(chan struct{})
	m.janitorDone = make(chan struct{})
	ticker := m.clock.NewTicker(interval)
	go m.sweep(ticker, ttl, onExpire, m.janitorStop, m.janitorDone)
}

func (m *Manager) sweep(ticker clockwork.Ticker, ttl time.Duration, onExpire func(string), stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
		}

		for _, userID := range m.ExpireIdle(ttl) {
			if onExpire != nil {
				onExpire(userID)
			}
		}
	}
}

// Close disposes every session and rejects new ones.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	stop, done := m.janitorStop, m.janitorDone
	m.janitorStop, m.janitorDone = nil, nil
	m.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	for _, s := range sessions {
		s.ctrl.Dispose()
	}
}
