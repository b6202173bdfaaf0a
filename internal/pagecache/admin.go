package pagecache

import (
	"crypto/subtle"
	"net/http"

	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
)

// ClearHandler empties store for callers presenting the admin bearer token.
// An empty token disables the endpoint.
func ClearHandler(store Store, token string) httpx.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		got := httpx.BearerToken(r)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return httpx.ErrUnauthorized
		}
		if err := store.Clear(r.Context()); err != nil {
			return err
		}
		logx.FromContext(r.Context()).Info("page cache cleared")
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
		return nil
	}
}
