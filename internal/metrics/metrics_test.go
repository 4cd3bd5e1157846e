// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// find returns the metric family with the given name, or nil.
func find(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestDomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPostCreated()
	c.RecordPostCreated()
	c.RecordPostDeleted()
	c.RecordCommentAdded()

	tests := []struct {
		name string
		want float64
	}{
		{"quillpress_posts_created_total", 2},
		{"quillpress_posts_deleted_total", 1},
		{"quillpress_comments_added_total", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mf := find(t, reg, tt.name)
			if mf == nil {
				t.Fatalf("%s not found", tt.name)
			}
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordLogin(false)
	c.RecordLogin(false)

	mf := find(t, reg, "quillpress_logins_total")
	if mf == nil {
		t.Fatal("quillpress_logins_total not found")
	}
	got := map[string]float64{}
	for _, m := range mf.GetMetric() {
		got[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	if got["success"] != 1 || got["failure"] != 2 {
		t.Errorf("logins = %v", got)
	}
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest(http.MethodGet, "/api/posts/{id}", 200, 15*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/api/posts/{id}", 404, time.Millisecond)

	mf := find(t, reg, "quillpress_http_requests_total")
	if mf == nil {
		t.Fatal("quillpress_http_requests_total not found")
	}
	if len(mf.GetMetric()) != 2 {
		t.Errorf("expected 2 label sets, got %d", len(mf.GetMetric()))
	}

	hist := find(t, reg, "quillpress_http_request_duration_seconds")
	if hist == nil {
		t.Fatal("duration histogram not found")
	}
	if n := hist.GetMetric()[0].GetHistogram().GetSampleCount(); n != 2 {
		t.Errorf("sample count = %d, want 2", n)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordPostCreated()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "quillpress_posts_created_total 1") {
		t.Errorf("scrape output missing counter:\n%s", body)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.RecordPostCreated()
	Discard.RecordPostDeleted()
	Discard.RecordCommentAdded()
	Discard.RecordLogin(true)
}
