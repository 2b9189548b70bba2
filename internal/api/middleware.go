package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/skycast/internal/state"
)

const sessionCookie = "skycast_session"

type ctxKey struct{}

// session attaches the caller's controller to the request context. When the
// cookie is missing or unknown, create starts a new session; otherwise the
// request gets an empty controller that is not kept.
func (s *Server) session(create bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ctrl *state.Controller
			if c, err := r.Cookie(sessionCookie); err == nil {
				ctrl, _ = s.sessions.Get(r.Context(), c.Value)
			}
			switch {
			case ctrl != nil:
			case create:
				var id string
				id, ctrl = s.sessions.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(s.cfg.SessionMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			default:
				ctrl = s.sessions.Detached()
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, ctrl)))
		})
	}
}

func controllerFrom(r *http.Request) *state.Controller {
	return r.Context().Value(ctxKey{}).(*state.Controller)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
