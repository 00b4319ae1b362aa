package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/matzehuels/ringlet/pkg/session"
)

// cookieName carries the session ID between requests.
const cookieName = "ringlet_session"

type ctxKey int

const sessionKey ctxKey = 0

// withSession resolves the session cookie, creating a fresh session (with the
// built-in default diagram) when the cookie is missing, unknown, or expired.
// The session is attached to the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.resolveSession(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if sess == nil {
			sess = session.New(s.cfg.Sessions.TTL())
			if err := s.sessions.Set(r.Context(), sess); err != nil {
				s.writeError(w, err)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sess.ID,
				Path:     "/",
				Expires:  sess.ExpiresAt,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.logger.Debugf("Created session %s", sess.ID)
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSession returns the live session for the request cookie, or nil when
// a new one is needed. Expired and unknown IDs both fall through to nil.
func (s *Server) resolveSession(r *http.Request) (*session.Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, nil
	}
	sess, err := s.sessions.Get(r.Context(), cookie.Value)
	if errors.Is(err, session.ErrExpired) {
		return nil, nil
	}
	return sess, err
}

// sessionFrom returns the session attached by [Server.withSession].
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
