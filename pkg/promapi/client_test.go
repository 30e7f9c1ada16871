package promapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Options{BaseURL: APIBase(srv.URL)})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestMetricNames_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/label/__name__/values" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"success","data":["up","up_time","node_cpu_seconds_total"]}`))
	}))

	names, err := client.MetricNames(context.Background())
	if err != nil {
		t.Fatalf("MetricNames: %v", err)
	}
	want := []string{"up", "up_time", "node_cpu_seconds_total"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d]: expected %q, got %q", i, n, names[i])
		}
	}
}

func TestMetricNames_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(Options{BaseURL: APIBase(url), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.MetricNames(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestMetricNames_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))

	_, err := client.MetricNames(context.Background())
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestMetricNames_MissingData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	}))

	_, err := client.MetricNames(context.Background())
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestMetricNames_HTTPErrorWithHTMLBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`Internal Server Error`))
	}))

	_, err := client.MetricNames(context.Background())
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestQuery_Success(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"resultType": "vector",
				"result": [
					{
						"metric": {"__name__": "up", "job": "prometheus", "instance": "localhost:9090"},
						"value": [1435781451.781, "1"]
					}
				]
			}
		}`))
	}))

	results, err := client.Query(context.Background(), `up{job="prometheus"}`)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if gotQuery != `up{job="prometheus"}` {
		t.Errorf("server received query %q", gotQuery)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Name() != "up" {
		t.Errorf("expected metric name 'up', got %q", r.Name())
	}
	if r.Metric["job"] != "prometheus" {
		t.Errorf("expected job label 'prometheus', got %q", r.Metric["job"])
	}
	if r.Value.Value != "1" {
		t.Errorf("expected value '1', got %q", r.Value.Value)
	}
	if r.Value.Timestamp != 1435781451.781 {
		t.Errorf("expected timestamp 1435781451.781, got %v", r.Value.Timestamp)
	}
}

func TestQuery_EmptyResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"resultType":"vector","result":[]}}`))
	}))

	results, err := client.Query(context.Background(), "absent_metric")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d results", len(results))
	}
}

func TestQuery_ServerReportedError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","errorType":"bad_data","error":"parse error at char 3"}`))
	}))

	_, err := client.Query(context.Background(), "up{")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "bad_data") {
		t.Errorf("expected error type in message, got %q", msg)
	}
}

func TestQuery_MissingResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"resultType":"vector"}}`))
	}))

	_, err := client.Query(context.Background(), "up")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestQueryRange_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query_range" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("step") != "1m0s" {
			t.Errorf("expected step '1m0s', got %q", q.Get("step"))
		}
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"resultType": "matrix",
				"result": [
					{
						"metric": {"__name__": "up", "job": "prometheus"},
						"values": [[1435781430, "1"], [1435781490, "0"]]
					}
				]
			}
		}`))
	}))

	start := time.Unix(1435781430, 0)
	end := time.Unix(1435781490, 0)
	series, err := client.QueryRange(context.Background(), "up", start, end, time.Minute)
	if err != nil {
		t.Fatalf("QueryRange: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	if len(series[0].Values) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series[0].Values))
	}
	if series[0].Values[1].Value != "0" {
		t.Errorf("expected second value '0', got %q", series[0].Values[1].Value)
	}
}

func TestNewClient_BasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":"error","error":"unauthorized"}`))
			return
		}
		w.Write([]byte(`{"status":"success","data":["up"]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: APIBase(srv.URL), Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	names, err := client.MetricNames(context.Background())
	if err != nil {
		t.Fatalf("MetricNames with auth: %v", err)
	}
	if len(names) != 1 || names[0] != "up" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestAPIBase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://localhost:9090", "http://localhost:9090/api/v1"},
		{"http://localhost:9090/", "http://localhost:9090/api/v1"},
		{"http://localhost:9090/api/v1", "http://localhost:9090/api/v1"},
		{"https://prom.example.com/api/v1/", "https://prom.example.com/api/v1"},
	}
	for _, c := range cases {
		if got := APIBase(c.in); got != c.want {
			t.Errorf("APIBase(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}
