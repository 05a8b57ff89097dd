package web

import (
	"context"
	"net/http"
	"time"

	"github.com/kri-sh27/s3transcribe/internal/server/auth"
	"github.com/kri-sh27/s3transcribe/internal/server/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "session_token"

// withSession resolves the browser session from the signed cookie. A
// missing, invalid or expired token yields a fresh session and a new
// cookie, so every request downstream always has a session attached.
func (s *Server) withSession(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(r)
		if sess == nil {
			created, err := s.startSession(w)
			if err != nil {
				s.logger.Error(r.Context(), "session start failed", "error", err.Error())
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			sess = created
		}

		r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess))
		handler(w, r)
	}
}

func (s *Server) resolveSession(r *http.Request) *session.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	id, err := auth.GetSessionIDFromToken(cookie.Value, s.jwtSecret)
	if err != nil {
		return nil
	}

	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil
	}
	return sess
}

func (s *Server) startSession(w http.ResponseWriter) (*session.Session, error) {
	sess := s.sessions.Create()

	token, err := auth.GenerateToken(sess.ID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		s.sessions.Destroy(sess.ID)
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess, nil
}

// requireAuth gates the workflow actions. Anonymous requests go back to
// the entry page instead of getting an error body.
func (s *Server) requireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r)
		if sess == nil || !sess.Authenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		handler(w, r)
	}
}

func (s *Server) logRequest(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		handler(w, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	}
}

func sessionFromContext(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*session.Session)
	return sess
}
