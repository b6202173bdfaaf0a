package pagecache

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/GeorgeMish/Yatube/internal/metrics"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
)

// HeaderCache reports HIT or MISS on cached routes.
const HeaderCache = "X-Cache"

type capture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (c *capture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *capture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.buf.Write(b)
	return c.ResponseWriter.Write(b)
}

// Middleware serves GET and HEAD requests from store, keyed by path and
// query. Only 200 responses are stored. A failing store is logged and the
// request is rendered as if it missed.
func Middleware(store Store, ttl time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key := r.URL.RequestURI()

		e, ok, err := store.Get(ctx, key)
		if err != nil {
			logx.FromContext(ctx).WithError(err).WithField("key", key).Warn("page cache read failed")
		}
		if ok {
			metrics.PageCacheHits.Inc()
			if e.ContentType != "" {
				w.Header().Set("Content-Type", e.ContentType)
			}
			w.Header().Set("Content-Length", strconv.Itoa(len(e.Body)))
			w.Header().Set(HeaderCache, "HIT")
			w.WriteHeader(e.Status)
			if r.Method == http.MethodGet {
				_, _ = w.Write(e.Body)
			}
			return
		}

		metrics.PageCacheMisses.Inc()
		w.Header().Set(HeaderCache, "MISS")
		c := &capture{ResponseWriter: w}
		next.ServeHTTP(c, r)
		if c.status != http.StatusOK || r.Method != http.MethodGet {
			return
		}
		entry := Entry{Status: c.status, ContentType: w.Header().Get("Content-Type"), Body: c.buf.Bytes()}
		if err := store.Set(ctx, key, entry, ttl); err != nil {
			logx.FromContext(ctx).WithError(err).WithField("key", key).Warn("page cache write failed")
		}
	})
}
