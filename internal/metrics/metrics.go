package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_pagecache_hits_total",
		Help: "Responses served from the page cache.",
	})
	PageCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_pagecache_misses_total",
		Help: "Cacheable requests that had to be rendered.",
	})
	PostsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_posts_published_total",
		Help: "Posts created.",
	})
	CommentsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_comments_total",
		Help: "Comment submissions by outcome.",
	}, []string{"outcome"})
)

var WritesLimited = promauto.NewCounter(prometheus.CounterOpts{
	Name: "blog_writes_rate_limited_total",
	Help: "Form submissions refused by the write rate limit.",
})
