package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chordwheel/pkg/cache"
	"github.com/matzehuels/chordwheel/pkg/graph"
	"github.com/matzehuels/chordwheel/pkg/observability"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

const datasetJSON = `{
  "node_count": 3,
  "words": [
    {"text": "joy", "value": 4, "node": 0},
    {"text": "meh", "value": 0, "node": 1},
    {"text": "fear", "value": -3, "node": 2}
  ]
}`

const datasetCSV = "text,value,node\njoy,4,0\nfear,-3,1\n"

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewInstrumented(cache.NewMemoryCache()), nil, log.New(io.Discard))
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	ts := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readAll(t, resp))

	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "generated request ID should be a UUID")
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123<script>")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123script", resp.Header.Get(RequestIDHeader))
}

func TestSanitizeRequestID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"req_1.a-B", "req_1.a-B"},
		{"a b\nc", "abc"},
		{"<>", ""},
		{strings.Repeat("x", 100), strings.Repeat("x", 64)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeRequestID(tt.in), "sanitizeRequestID(%q)", tt.in)
	}
}

func TestLayoutCaches(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout", "application/json", datasetJSON)
	body := readAll(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get(HeaderCache))
	assert.NotEmpty(t, resp.Header.Get(HeaderDatasetHash))

	l, err := graph.UnmarshalLayout([]byte(body))
	require.NoError(t, err)
	assert.Len(t, l.Arcs, 3)
	assert.Equal(t, []string{"joy", "meh", "fear"}, l.Labels)

	again := post(t, ts.URL+"/v1/layout", "application/json", datasetJSON)
	assert.Equal(t, "hit", again.Header.Get(HeaderCache))
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		wantType    string
		want        string
	}{
		{"svg from json", "?format=svg&style=simple", "application/json", datasetJSON, "image/svg+xml", "<svg"},
		{"default format", "", "application/json", datasetJSON, "image/svg+xml", "<svg"},
		{"csv body", "?format=svg", "text/csv; charset=utf-8", datasetCSV, "image/svg+xml", `class="arc`},
		{"input param", "?input=yaml&format=json", "", "words:\n  - {text: a, value: 2}\n", "application/json", `"shapes"`},
		{"nodelink", "?viz=nodelink&format=svg", "application/json", datasetJSON, "image/svg+xml", "<svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render"+tt.query, tt.contentType, tt.body)
			body := readAll(t, resp)
			require.Equal(t, http.StatusOK, resp.StatusCode, body)
			assert.Equal(t, tt.wantType, resp.Header.Get("Content-Type"))
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestRenderQueryOptions(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/render?format=svg&title=Mood&interactive=false&width=500&height=500", "application/json", datasetJSON)
	body := readAll(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "<title>Mood</title>")
	assert.NotContains(t, body, "<script")
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad format", "?format=gif", "application/json", datasetJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad style", "?style=neon", "application/json", datasetJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad color", "?positive=green", "application/json", datasetJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad width", "?width=wide", "application/json", datasetJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad bool", "?refresh=maybe", "application/json", datasetJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed json", "", "application/json", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"empty body", "", "application/json", "  ", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown content type", "", "image/gif", "GIF89a", http.StatusBadRequest, "INVALID_FORMAT"},
		{"too many nodes", "", "application/json", `{"node_count": 500, "words": []}`, http.StatusRequestEntityTooLarge, "TOO_LARGE"},
		{"non-finite value", "?input=yaml", "", "words:\n  - {text: a, value: .nan}\n", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render"+tt.query, tt.contentType, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			e := decodeError(t, resp)
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.Error)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), e.RequestID)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	ts := newTestServer(t, WithMaxBodySize(32))

	resp := post(t, ts.URL+"/v1/render", "application/json", datasetJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "TOO_LARGE", string(decodeError(t, resp).Code))
}

func TestVisualize(t *testing.T) {
	ts := newTestServer(t)

	layout := readAll(t, post(t, ts.URL+"/v1/layout?style=handdrawn", "application/json", datasetJSON))

	resp := post(t, ts.URL+"/v1/visualize?format=svg", "application/json", layout)
	body := readAll(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.True(t, strings.HasPrefix(body, "<svg"))
	assert.Equal(t, "miss", resp.Header.Get(HeaderCache))

	again := post(t, ts.URL+"/v1/visualize?format=svg", "application/json", layout)
	assert.Equal(t, "hit", again.Header.Get(HeaderCache))

	bad := post(t, ts.URL+"/v1/visualize", "application/json", `{"viz_type": "chord"`)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestRouting(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", string(decodeError(t, resp).Code))

	resp2, err := http.Get(ts.URL + "/v1/render")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)

	resp3, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode, "metrics are only mounted when configured")
}

func TestMetrics(t *testing.T) {
	hooks := observability.NewPrometheusHooks()
	hooks.Register()
	defer observability.Reset()

	ts := newTestServer(t, WithMetrics(hooks.Handler()))
	post(t, ts.URL+"/v1/render", "application/json", datasetJSON)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body := readAll(t, resp)

	assert.Contains(t, body, `chordwheel_http_requests_total{method="POST",route="/v1/render",status="200"} 1`)
	assert.Contains(t, body, "chordwheel_pipeline_stage_total")
	assert.Contains(t, body, "chordwheel_cache_operations_total")
}

type routeRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	errors int
}

func (r *routeRecorder) OnResponse(_ context.Context, _, route string, _, _ int, _ time.Duration) {
	r.mu.Lock()
	r.routes = append(r.routes, route)
	r.mu.Unlock()
}

func (r *routeRecorder) OnError(context.Context, string, string, error) {
	r.mu.Lock()
	r.errors++
	r.mu.Unlock()
}

func TestHooksUseRoutePattern(t *testing.T) {
	rec := &routeRecorder{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	ts := newTestServer(t)
	post(t, ts.URL+"/v1/layout", "application/json", datasetJSON)
	post(t, ts.URL+"/v1/render?format=gif", "application/json", datasetJSON)
	resp, err := http.Get(ts.URL + "/some/random/path")
	require.NoError(t, err)
	resp.Body.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"/v1/layout", "/v1/render", "unmatched"}, rec.routes)
	assert.Equal(t, 2, rec.errors)
}

func TestRecoverer(t *testing.T) {
	s := New(nil, WithLogger(log.New(io.Discard)))
	h := requestID(s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var e errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "INTERNAL_ERROR", string(e.Code))
	assert.NotContains(t, e.Error, "boom")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), WithLogger(log.New(io.Discard)))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
