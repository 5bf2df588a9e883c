package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.sessions.authenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderLogin(w, r, "")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if s.password == "" {
		s.sessions.flash(w, r, "error", "Sign-in is disabled on this catalog.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	submitted := r.PostFormValue("password")
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(s.password)) != 1 {
		s.renderLogin(w, r, "Incorrect password.")
		return
	}
	s.sessions.signIn(w, r)
	s.sessions.flash(w, r, "info", "Signed in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, loginError string) {
	body, err := s.views.RenderLogin(r.Context(), views.LoginData{
		Authenticated: s.sessions.authenticated(r),
		Flashes:       s.sessions.popFlashes(r),
		LoginError:    loginError,
	})
	if err != nil {
		s.serverError(w, err)
		return
	}
	status := http.StatusOK
	if loginError != "" {
		status = http.StatusUnauthorized
	}
	s.writeHTML(w, status, body)
}

// requireAuth gates edit pages. It reports whether the request may proceed.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if s.sessions.authenticated(r) {
		return true
	}
	s.sessions.flash(w, r, "error", "You must sign in to edit records.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return false
}
