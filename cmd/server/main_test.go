package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuroopSrivastava/Verdictify/internal/analyzer"
	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/config"
	"github.com/AnuroopSrivastava/Verdictify/internal/parser"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

const page = `<html><head><title>Nike Tee | Myntra</title></head><body><script>
{"price":799,"mrp":999,"reviewText":"Nice fit, good value","reviewText":"Bad stitching"}
</script></body></html>`

type fetcherFunc func(ctx context.Context, productURL string) (parser.Page, error)

func (f fetcherFunc) FetchRenderedPage(ctx context.Context, productURL string) (parser.Page, error) {
	return f(ctx, productURL)
}

func newTestServer(t *testing.T, f fetcherFunc) *httptest.Server {
	t.Helper()
	return newTestServerWithBudget(t, f, batchBudget)
}

func newTestServerWithBudget(t *testing.T, f fetcherFunc, budget time.Duration) *httptest.Server {
	t.Helper()
	l := logger.Discard()
	svc := analyzer.New(f, "myntra.com", config.DefaultTuning(), l)
	ts := httptest.NewServer(logRequest(l, newMux(svc, l, 2, budget)))
	t.Cleanup(ts.Close)
	return ts
}

func okFetcher(context.Context, string) (parser.Page, error) { return parser.FromString(page) }

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAnalyzeEndpoint(t *testing.T) {
	ts := newTestServer(t, okFetcher)

	resp, out := post(t, ts.URL+"/analyze", `{"url":"https://www.myntra.com/tshirts/nike/123456/buy","limit":"20"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	assert.Equal(t, "Nike Tee", out["productName"])
	assert.Equal(t, 799.0, out["price"])
	assert.Equal(t, 20.0, out["discount"])
	assert.Equal(t, 12.0, out["total"])
	assert.Equal(t, "StrongBuy", out["verdict"])
	assert.Equal(t, []any{"Bad stitching"}, out["cons"])
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	ts := newTestServer(t, okFetcher)

	resp, err := http.Get(ts.URL + "/analyze")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	cases := []struct {
		body, msg string
	}{
		{`{"limit":10}`, "Invalid Myntra URL"},
		{`{"url":"https://www.amazon.in/dp/1"}`, "Invalid Myntra URL"},
		{`{"url":"https://www.myntra.com/shirts"}`, "Product ID not found in URL"},
		{`{"url":"https://www.myntra.com/1","limit":-3}`, "limit must not be negative"},
		{`{"url":"https://www.myntra.com/1","limit":"many"}`, "limit must be a number"},
		{`{"url":"https://www.myntra.com/1","limit":"NaN"}`, "limit must be a number"},
		{`{"url":"https://www.myntra.com/1","limit":1e19}`, "limit must be at most 500"},
		{`{"url":"https://www.myntra.com/1","limit":"1e400"}`, "limit must be a number"},
		{`not json`, "invalid payload"},
	}
	for _, c := range cases {
		resp, out := post(t, ts.URL+"/analyze", c.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, c.body)
		assert.Equal(t, c.msg, out["error"], c.body)
	}
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	ts := newTestServer(t, func(context.Context, string) (parser.Page, error) {
		return parser.Page{}, apperr.Upstream("proxy status 500", nil)
	})
	resp, out := post(t, ts.URL+"/analyze", `{"url":"https://www.myntra.com/1"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Scraping failed. Try again later.", out["error"])
}

func TestAnalyzeEndpointConfigFailure(t *testing.T) {
	ts := newTestServer(t, func(context.Context, string) (parser.Page, error) {
		return parser.Page{}, apperr.Config("SCRAPER_API_KEY missing in env")
	})
	resp, out := post(t, ts.URL+"/analyze", `{"url":"https://www.myntra.com/1"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Service is misconfigured.", out["error"])
}

func TestBatchEndpoint(t *testing.T) {
	ts := newTestServer(t, okFetcher)

	resp, err := http.Post(ts.URL+"/analyze/batch", "application/json",
		strings.NewReader(`{"urls":["https://www.myntra.com/1","bogus"],"limit":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []analyzer.BatchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Result)
	assert.Equal(t, 3, out[0].Result.Total)
	assert.Equal(t, "Invalid Myntra URL", out[1].Error)

	r2, body := post(t, ts.URL+"/analyze/batch", `{"urls":[]}`)
	assert.Equal(t, http.StatusBadRequest, r2.StatusCode)
	assert.Equal(t, "urls must hold 1 to 100 non-empty entries", body["error"])
}

func TestBatchEndpointDeadline(t *testing.T) {
	ts := newTestServerWithBudget(t, func(ctx context.Context, _ string) (parser.Page, error) {
		<-ctx.Done()
		return parser.Page{}, apperr.Upstream("fetch cancelled", ctx.Err())
	}, 50*time.Millisecond)

	urls := `["https://www.myntra.com/1","https://www.myntra.com/2","https://www.myntra.com/3"]`
	resp, err := http.Post(ts.URL+"/analyze/batch", "application/json", strings.NewReader(`{"urls":`+urls+`}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []analyzer.BatchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 3)
	assert.Equal(t, "Scraping failed. Try again later.", out[0].Error)
	assert.Equal(t, "Scraping failed. Try again later.", out[1].Error)
	assert.Equal(t, analyzer.ErrBatchDeadline.Error(), out[2].Error)
}

func TestUploadEndpoint(t *testing.T) {
	ts := newTestServer(t, okFetcher)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "jobs.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("url,limit\nhttps://www.myntra.com/1,4\nhttps://www.myntra.com/2,\n"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/analyze/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	dec := json.NewDecoder(resp.Body)
	var totals []int
	for dec.More() {
		var r analyzer.BatchResult
		require.NoError(t, dec.Decode(&r))
		require.NotNil(t, r.Result)
		totals = append(totals, r.Result.Total)
	}
	assert.Equal(t, []int{4, 12}, totals)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, okFetcher)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLimitUnmarshal(t *testing.T) {
	for in, want := range map[string]Limit{`12`: 12, `"30"`: 30, `7.9`: 7, `null`: 0, `""`: 0} {
		var l Limit
		require.NoError(t, json.Unmarshal([]byte(in), &l), in)
		assert.Equal(t, want, l, in)
	}
	var l Limit
	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &l), errLimitNotNumber)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"Inf"`), &l), errLimitNotNumber)
	require.NoError(t, json.Unmarshal([]byte(`-1e30`), &l))
	assert.Equal(t, Limit(math.MinInt32), l)
}
