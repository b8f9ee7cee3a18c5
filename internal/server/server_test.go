package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/newstrust/internal/logging"
	"github.com/ppiankov/newstrust/internal/model"
	"github.com/ppiankov/newstrust/internal/score"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAnalyzer struct {
	report *model.AnalysisReport
	urls   []string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, url string) *model.AnalysisReport {
	s.urls = append(s.urls, url)
	r := *s.report
	r.SourceURL = url
	return &r
}

func newTestEngine(a ReportAnalyzer) *gin.Engine {
	return New(a, score.NewCachedScorer(nil, nil, 0, logging.Discard()), logging.Discard())
}

func doJSON(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, newTestEngine(nil), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","analyze":false}`, w.Body.String())
}

func TestAnalyze(t *testing.T) {
	stub := &stubAnalyzer{report: &model.AnalysisReport{
		ID:    "run-1",
		Score: score.NewScorer(nil).Score([]string{"https://a.example/1"}),
	}}

	w := doJSON(t, newTestEngine(stub), http.MethodPost, "/api/v1/analyze", map[string]string{"url": "https://news.example/a"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Report model.AnalysisReport `json:"report"`
		View   struct {
			Badge   string `json:"badge"`
			Metrics []any  `json:"metrics"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.GradeB, resp.Report.Score.Grade)
	assert.Equal(t, "https://news.example/a", resp.Report.SourceURL)
	assert.Equal(t, "warning", resp.View.Badge)
	assert.Len(t, resp.View.Metrics, 3)
	assert.Equal(t, []string{"https://news.example/a"}, stub.urls)
}

func TestAnalyze_BadRequest(t *testing.T) {
	stub := &stubAnalyzer{report: &model.AnalysisReport{}}
	g := newTestEngine(stub)

	w := doJSON(t, g, http.MethodPost, "/api/v1/analyze", map[string]string{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, g, http.MethodPost, "/api/v1/analyze", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.urls)
}

func TestAnalyze_NotConfigured(t *testing.T) {
	w := doJSON(t, newTestEngine(nil), http.MethodPost, "/api/v1/analyze", map[string]string{"url": "https://news.example/a"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyze_ConfigFailure(t *testing.T) {
	stub := &stubAnalyzer{report: &model.AnalysisReport{
		Score:   score.Degraded("x"),
		Failure: &model.Failure{Kind: model.FailureConfig, Stage: model.StageSearch},
	}}
	w := doJSON(t, newTestEngine(stub), http.MethodPost, "/api/v1/analyze", map[string]string{"url": "https://news.example/a"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestScore(t *testing.T) {
	urls := []string{"https://www.chosun.com/1", "https://b.example/2", "https://c.example/3"}
	w := doJSON(t, newTestEngine(nil), http.MethodPost, "/api/v1/score", map[string][]string{"urls": urls})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Score  model.ScoreReport `json:"score"`
		Cached bool              `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.GradeA, resp.Score.Grade)
	assert.Equal(t, 1, resp.Score.TrustedCount)
	assert.False(t, resp.Cached)
}

func TestScore_Empty(t *testing.T) {
	w := doJSON(t, newTestEngine(nil), http.MethodPost, "/api/v1/score", map[string][]string{"urls": {}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Score model.ScoreReport `json:"score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.GradeNA, resp.Score.Grade)
}

func TestScore_BadRequest(t *testing.T) {
	w := doJSON(t, newTestEngine(nil), http.MethodPost, "/api/v1/score", map[string]string{"urls": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
