package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/jwt"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
	"github.com/GeorgeMish/Yatube/internal/user"
)

// SessionCookie carries the identity token for browser clients.
const SessionCookie = "session"

type ctxKey struct{}

// slot holds the viewer of one request, loaded on first use.
type slot struct {
	once sync.Once
	load func() *user.User
	u    *user.User
}

func (s *slot) get() *user.User {
	s.once.Do(func() {
		if s.load != nil {
			s.u = s.load()
		}
	})
	return s.u
}

func WithViewer(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, &slot{u: u})
}

// Viewer returns the signed-in user, or nil for anonymous requests.
func Viewer(ctx context.Context) *user.User {
	if s, ok := ctx.Value(ctxKey{}).(*slot); ok {
		return s.get()
	}
	return nil
}

// ViewerID is 0 for anonymous requests.
func ViewerID(ctx context.Context) uint64 {
	if u := Viewer(ctx); u != nil {
		return u.ID
	}
	return 0
}

// Require returns the viewer or httpx.ErrUnauthorized.
func Require(ctx context.Context) (*user.User, error) {
	if u := Viewer(ctx); u != nil {
		return u, nil
	}
	return nil, httpx.ErrUnauthorized
}

func token(r *http.Request) string {
	if t := httpx.BearerToken(r); t != "" {
		return t
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Identify checks the request token and attaches its user to the context.
// The user row is read only when a handler asks for the viewer. Requests
// without a usable token continue anonymously.
func Identify(codec *jwt.Codec, users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := token(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}
			log := logx.FromContext(r.Context())
			uid, err := codec.Parse(tok)
			if err != nil {
				log.WithError(err).Debug("ignoring session token")
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			s := &slot{load: func() *user.User {
				u, err := users.GetByID(ctx, uid)
				if err != nil {
					if !errors.Is(err, httpx.ErrNotFound) {
						log.WithError(err).Warn("session user lookup failed")
					}
					return nil
				}
				return u
			}}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKey{}, s)))
		})
	}
}

// LoginURL appends the next parameter pointing back at target.
func LoginURL(loginURL, target string) string {
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + url.QueryEscape(target)
}

// LoginRequired sends anonymous requests to the login page.
func LoginRequired(loginURL string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Viewer(r.Context()) == nil {
			http.Redirect(w, r, LoginURL(loginURL, r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
