package app

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GeorgeMish/Yatube/internal/auth"
	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/feed"
	"github.com/GeorgeMish/Yatube/internal/follow"
	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/kafka"
	"github.com/GeorgeMish/Yatube/internal/media"
	"github.com/GeorgeMish/Yatube/internal/pagecache"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/ratelimit"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/jwt"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Deps struct {
	Store *db.Store
	// Cache holds the rendered index page.
	Cache      pagecache.Store
	CacheTTL   time.Duration
	Images     media.Storage
	Events     kafka.Writer
	JWT        *jwt.Codec
	LoginURL   string
	AdminToken string
	PageSize   int
	// Limiter, when set, caps form submissions per signed-in user.
	Limiter *ratelimit.Limiter
	// Clock stamps new posts; nil means time.Now.
	Clock func() time.Time
}

// New builds the HTTP handler of the blog.
func New(d Deps) http.Handler {
	if d.Images == nil {
		d.Images = media.NewMemoryStorage()
	}
	if d.Events == nil {
		d.Events = kafka.Nop{}
	}
	if d.Cache == nil {
		d.Cache = pagecache.NewMemoryStore(nil)
	}
	var postOpts []post.Option
	if d.Clock != nil {
		postOpts = append(postOpts, post.WithClock(d.Clock))
	}

	userRepo := user.NewRepository(d.Store)
	groupRepo := group.NewRepository(d.Store)
	postRepo := post.NewRepository(d.Store)
	commentRepo := comment.NewRepository(d.Store)
	followSvc := follow.NewService(follow.NewRepository(d.Store))

	postSvc := post.NewService(postRepo, groupRepo, d.Images, d.Events, postOpts...)
	commentSvc := comment.NewService(commentRepo, postRepo)
	feedSvc := feed.NewService(feed.Deps{
		Repo:     feed.NewRepository(d.Store),
		Users:    userRepo,
		Groups:   groupRepo,
		Posts:    postRepo,
		Comments: commentRepo,
		Follows:  followSvc,
		PageSize: d.PageSize,
	})

	fh := feed.NewHandler(feedSvc)
	ph := post.NewHandler(postSvc)
	ch := comment.NewHandler(commentSvc)
	flh := follow.NewHandler(followSvc, userRepo)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /healthz", httpx.Wrap(health(d.Store)))
	mux.Handle("POST /admin/cache/clear", httpx.Wrap(pagecache.ClearHandler(d.Cache, d.AdminToken)))

	mux.Handle("GET /{$}", pagecache.Middleware(d.Cache, d.CacheTTL, httpx.Wrap(fh.Index)))
	mux.Handle("GET /group/{slug}/{$}", httpx.Wrap(fh.Group))
	mux.Handle("GET /profile/{username}/{$}", httpx.Wrap(fh.Profile))
	mux.Handle("GET /posts/{post_id}/{$}", httpx.Wrap(fh.Detail))

	protect := func(pattern string, h httpx.HandlerFunc) {
		mux.Handle(pattern, auth.LoginRequired(d.LoginURL, httpx.Wrap(h)))
	}
	write := func(pattern string, h httpx.HandlerFunc) {
		var next http.Handler = httpx.Wrap(h)
		if d.Limiter != nil {
			next = d.Limiter.Middleware(func(r *http.Request) uint64 { return auth.ViewerID(r.Context()) }, next)
		}
		mux.Handle(pattern, auth.LoginRequired(d.LoginURL, next))
	}
	protect("GET /create/{$}", ph.CreateForm)
	write("POST /create/{$}", ph.Create)
	protect("GET /posts/{post_id}/edit/{$}", ph.EditForm)
	write("POST /posts/{post_id}/edit/{$}", ph.Edit)
	write("POST /posts/{post_id}/comment/{$}", ch.Add)
	protect("GET /follow/{$}", fh.Following)
	protect("GET /profile/{username}/follow/{$}", flh.Follow)
	protect("GET /profile/{username}/unfollow/{$}", flh.Unfollow)

	return logx.Middleware(auth.Identify(d.JWT, userRepo)(mux))
}

func health(store *db.Store) httpx.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		sqlDB, err := store.Base.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
		return nil
	}
}
