// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userSinkKey
)

// CookieHandler sets object structure.
type CookieHandler struct {
	sec secretary.Secretary
	cfg *config.Config
}

// NewCookieHandler initializes a new cookie handler.
func NewCookieHandler(sec secretary.Secretary, cfg *config.Config) (*CookieHandler, error) {
	if sec == nil {
		return nil, errors.New("nil secretary was passed to cookie handler initializer")
	}
	return &CookieHandler{
		sec: sec,
		cfg: cfg,
	}, nil
}

// CookieHandle provides cookie handling functionality.
// Requests without an identity cookie get a fresh user ID; requests with a forged one are rejected.
func (c *CookieHandler) CookieHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string
		cookie, err := r.Cookie(c.cfg.AuthKey)
		if errors.Is(err, http.ErrNoCookie) {
			userID = uuid.New().String()
			token := c.sec.Encode(userID)
			newCookie := &http.Cookie{
				Name:  c.cfg.AuthKey,
				Value: token,
				Path:  "/",
			}
			http.SetCookie(w, newCookie)
			r.AddCookie(newCookie)
		} else {
			userID, err = c.sec.Decode(cookie.Value)
			if err != nil {
				log.WithField("remote", r.RemoteAddr).Warn("rejected identity cookie: ", err)
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	})
}

// ContextWithUserID returns a copy of ctx carrying the user ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	if sink, ok := ctx.Value(userSinkKey).(*string); ok {
		*sink = userID
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user ID stored by CookieHandle.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// withUserSink lets an outer middleware learn the user ID resolved further down the chain.
func withUserSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, userSinkKey, sink)
}
