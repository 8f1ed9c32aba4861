package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/obiora/librarium/internal/models"
	"github.com/obiora/librarium/internal/session"
)

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *Api) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := newResponseWriterWrapper(w)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		a.logger.Info(
			"request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.String()),
			slog.Int("status", ww.statusCode),
			slog.String("duration", duration.String()),
			slog.String("remote_addr", r.RemoteAddr),
		)
	})
}

// resolveIdentity turns the session cookie into the authenticated identity.
// It is called once per request by the gates below; handlers read the result
// from the context and never touch session state themselves.
func (a *Api) resolveIdentity(r *http.Request) (*models.Identity, error) {
	cookie, err := r.Cookie(a.config.Session_cookie)

	if err != nil {
		return nil, session.ErrSessionNotFound
	}

	sess, err := a.sessions.Get(r.Context(), cookie.Value)

	if err != nil {
		return nil, err
	}

	return sess.Identity(), nil
}

func (a *Api) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolveIdentity(r)

		if err != nil {
			if err != session.ErrSessionNotFound {
				a.logger.Error(err.Error(), "service", "RequireAuthenticated")
				respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
				return
			}

			a.logger.Warn("no valid session", "status", "unauthorized")
			respondWithError(w, http.StatusUnauthorized, fmt.Errorf("Unauthorized"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), "identity", identity)))
	})
}

func (a *Api) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolveIdentity(r)

		if err != nil {
			if err != session.ErrSessionNotFound {
				a.logger.Error(err.Error(), "service", "RequireAdmin")
				respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
				return
			}

			a.logger.Warn("no valid session", "status", "forbidden")
			respondWithError(w, http.StatusForbidden, fmt.Errorf("Forbidden"))
			return
		}

		if identity.Role != models.RoleAdmin {
			a.logger.Warn("non-admin session on admin route", "status", "forbidden")
			respondWithError(w, http.StatusForbidden, fmt.Errorf("Forbidden"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), "identity", identity)))
	})
}
