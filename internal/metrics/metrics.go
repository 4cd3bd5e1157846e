// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics collects and exposes Prometheus metrics for the HTTP API
// and the content service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of domain events the content and auth services
// report. Discard is a no-op implementation.
type Recorder interface {
	RecordPostCreated()
	RecordPostDeleted()
	RecordCommentAdded()
	RecordLogin(success bool)
}

// Collector implements Recorder and the HTTP request metrics on top of a
// prometheus registry.
type Collector struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	postsCreated  prometheus.Counter
	postsDeleted  prometheus.Counter
	commentsAdded prometheus.Counter
	logins        *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quillpress_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quillpress_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		postsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quillpress_posts_created_total",
			Help: "Posts created.",
		}),
		postsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quillpress_posts_deleted_total",
			Help: "Posts deleted.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quillpress_comments_added_total",
			Help: "Comments appended to posts.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quillpress_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.requests,
		c.duration,
		c.postsCreated,
		c.postsDeleted,
		c.commentsAdded,
		c.logins,
	)

	return c
}

// ObserveRequest records one finished HTTP request. route is the matched
// pattern (for example /api/posts/{id}), never the raw path, so label
// cardinality stays bounded.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordPostCreated counts a created post.
func (c *Collector) RecordPostCreated() { c.postsCreated.Inc() }

// RecordPostDeleted counts a deleted post.
func (c *Collector) RecordPostDeleted() { c.postsDeleted.Inc() }

// RecordCommentAdded counts an appended comment.
func (c *Collector) RecordCommentAdded() { c.commentsAdded.Inc() }

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type discard struct{}

func (discard) RecordPostCreated()  {}
func (discard) RecordPostDeleted()  {}
func (discard) RecordCommentAdded() {}
func (discard) RecordLogin(bool)    {}

// Discard is a Recorder that drops every event.
var Discard Recorder = discard{}
