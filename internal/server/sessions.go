package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

const sessionCookie = "catalog_session"

// session is the per-browser state: the signed-in flag, the CSRF token
// accepted on form posts, and any flash messages waiting for the next page.
type session struct {
	authenticated bool
	csrf          string
	flashes       []views.Flash
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*session)}
}

// lookup returns the request's session, or nil when none exists.
func (m *sessionManager) lookup(r *http.Request) *session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[cookie.Value]
}

// start returns the request's session, creating one and setting the cookie
// when the browser has none yet.
func (m *sessionManager) start(w http.ResponseWriter, r *http.Request) *session {
	if existing := m.lookup(r); existing != nil {
		return existing
	}
	token := uuid.NewString()
	created := &session{csrf: uuid.NewString()}
	m.mu.Lock()
	m.sessions[token] = created
	m.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Make the new session visible to later lookups within this request.
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	return created
}

// destroy drops the session and expires the cookie.
func (m *sessionManager) destroy(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return
	}
	m.mu.Lock()
	delete(m.sessions, cookie.Value)
	m.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *sessionManager) authenticated(r *http.Request) bool {
	s := m.lookup(r)
	if s == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.authenticated
}

func (m *sessionManager) signIn(w http.ResponseWriter, r *http.Request) {
	s := m.start(w, r)
	m.mu.Lock()
	s.authenticated = true
	m.mu.Unlock()
}

// csrfToken returns the session's CSRF token, starting a session if needed.
func (m *sessionManager) csrfToken(w http.ResponseWriter, r *http.Request) string {
	s := m.start(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.csrf
}

// checkCSRF reports whether the submitted token matches the session's.
func (m *sessionManager) checkCSRF(r *http.Request, token string) bool {
	s := m.lookup(r)
	if s == nil || token == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return token == s.csrf
}

// flash queues a message for the next rendered page.
func (m *sessionManager) flash(w http.ResponseWriter, r *http.Request, level, message string) {
	s := m.start(w, r)
	m.mu.Lock()
	s.flashes = append(s.flashes, views.Flash{Level: level, Message: message})
	m.mu.Unlock()
}

// popFlashes drains and returns the queued messages.
func (m *sessionManager) popFlashes(r *http.Request) []views.Flash {
	s := m.lookup(r)
	if s == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	flashes := s.flashes
	s.flashes = nil
	return flashes
}
