package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/v1/products", "200", 150*time.Millisecond)
	m.ObserveRequest("GET", "/v1/products", "200", 250*time.Millisecond)
	m.ObserveRequest("POST", "/v1/cart/items", "201", 10*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	counter, ok := byName["http_requests_total"]
	if !ok {
		t.Fatalf("expected http_requests_total to be registered")
	}
	var getCount float64
	for _, metric := range counter.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["method"] == "GET" && labels["route"] == "/v1/products" && labels["status"] == "200" {
			getCount = metric.GetCounter().GetValue()
		}
	}
	if getCount != 2 {
		t.Fatalf("expected 2 GET /v1/products requests, got %v", getCount)
	}

	hist, ok := byName["http_request_duration_seconds"]
	if !ok {
		t.Fatalf("expected http_request_duration_seconds to be registered")
	}
	var samples uint64
	for _, metric := range hist.GetMetric() {
		samples += metric.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Fatalf("expected 3 duration samples, got %d", samples)
	}
}

func TestObserveRequestNormalizesEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("", "", "500", time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetValue() == "" {
					t.Fatalf("expected empty labels to be normalized, got empty %q", pair.GetName())
				}
			}
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", "200", time.Second)

	m = NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", "200", time.Second)
}
