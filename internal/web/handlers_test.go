package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foti-africa/foti-web/internal/catalog"
	"github.com/foti-africa/foti-web/internal/chat"
	"github.com/foti-africa/foti-web/internal/feedback"
	"github.com/foti-africa/foti-web/internal/genai"
	"github.com/foti-africa/foti-web/internal/logger"
	"github.com/foti-africa/foti-web/internal/metrics"
	"github.com/foti-africa/foti-web/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAssistant answers every message with a fixed reply.
type stubAssistant struct {
	mu    sync.Mutex
	reply genai.Reply
	calls int
}

func (s *stubAssistant) Forward(_ context.Context, _ []genai.Message, _ string) genai.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.reply
}

type testSite struct {
	engine    *gin.Engine
	assistant *stubAssistant
	sessions  *chat.Store
	metrics   *metrics.Metrics
}

type siteOption func(*Options)

func withLimiter(burst float64) siteOption {
	return func(o *Options) {
		o.Limiter = ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
			Name:       "chat",
			Burst:      burst,
			RefillRate: 0.001,
			Metrics:    o.Metrics,
		})
	}
}

func newTestSite(t *testing.T, opts ...siteOption) *testSite {
	t.Helper()

	var buf bytes.Buffer
	log := logger.NewWithWriter("error", &buf)
	m := metrics.New(prometheus.NewRegistry())
	assistant := &stubAssistant{reply: genai.Reply{Text: "Try **Zanzibar**."}}
	sessions := chat.NewStore(time.Hour, nil)

	o := Options{
		Catalog:          catalog.Default(),
		Assistant:        assistant,
		ChatEnabled:      true,
		Sessions:         sessions,
		Feedback:         feedback.NewService(0, m, log),
		Metrics:          m,
		Logger:           log,
		MaxMessageLength: 50,
		SessionTTL:       time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Limiter != nil {
		t.Cleanup(o.Limiter.Stop)
	}

	renderer, err := NewRenderer()
	require.NoError(t, err)

	engine := gin.New()
	require.NoError(t, engine.SetTrustedProxies(nil))
	engine.HTMLRender = renderer
	h := NewHandler(o)
	h.Register(engine)
	engine.NoRoute(h.NotFound)

	return &testSite{engine: engine, assistant: assistant, sessions: sessions, metrics: m}
}

func (s *testSite) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testSite) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testSite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func TestViews_DistinguishingContent(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	tests := []struct {
		path     string
		view     View
		heading  string
		selector string
		count    int
	}{
		{"/", ViewHome, "Learn by Doing.", "#featured-tours .tour-card", 3},
		{"/tours", ViewTours, "Tour Marketplace", "#tour-list .tour-card", 3},
		{"/journal", ViewResearch, "FoTI Journal", "article.paper-entry", 3},
		{"/students", ViewStudents, "Our Talent Pool", ".student-card", 3},
		{"/careers", ViewCareers, "Career Roadmap", "li.roadmap-step", 4},
		{"/feedback", ViewFeedback, "We Value Your Feedback", "textarea[name=message]", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			t.Parallel()
			w := site.get(tt.path)
			require.Equal(t, http.StatusOK, w.Code)

			doc := parse(t, w)
			assert.Equal(t, string(tt.view), doc.Find("body").AttrOr("data-view", ""))
			assert.Contains(t, doc.Find("h1").First().Text(), tt.heading)
			assert.Equal(t, tt.count, doc.Find(tt.selector).Length())
			assert.Zero(t, doc.Find(".tour-detail").Length(), "no tour detail outside /tours/:id")
		})
	}
}

func TestViews_ActiveNav(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	doc := parse(t, site.get("/journal"))
	active := doc.Find(".nav-link.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Journal", active.Text())
	assert.Equal(t, "page", active.AttrOr("aria-current", ""))

	doc = parse(t, site.get("/feedback"))
	assert.Zero(t, doc.Find(".nav-link.active").Length(), "feedback has no top nav entry")
}

func TestTourCard_Formatting(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	doc := parse(t, site.get("/tours"))
	card := doc.Find(`.tour-card[data-tour-id="t1"]`)
	require.Equal(t, 1, card.Length())

	assert.Equal(t, "$1,200 USD", card.Find(".price-badge").Text())
	assert.Equal(t, 2, card.Find(".tag-row .tag").Length())
	assert.Equal(t, "Amara Okafor", card.Find(".curator-name").Text())
	assert.Equal(t, "/tours/t1", card.AttrOr("href", ""))
}

func TestTourDetail(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	w := site.get("/tours/t2")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parse(t, w)
	assert.Equal(t, "tours", doc.Find("body").AttrOr("data-view", ""))
	detail := doc.Find(".tour-detail")
	require.Equal(t, 1, detail.Length())
	assert.Equal(t, "t2", detail.AttrOr("data-tour-id", ""))
	assert.Equal(t, "Zanzibar Spice Route & Culinary History", detail.Find("h1").Text())
	assert.Equal(t, "$850", detail.Find(".price .amount").Text())
	assert.Contains(t, detail.Find(".outputs-box").Text(), "Research Outputs")
	assert.Equal(t, "David Kimani", detail.Find(".guide .person-name").Text())
}

func TestTourDetail_NotFound(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	w := site.get("/tours/t999")
	require.Equal(t, http.StatusNotFound, w.Code)

	doc := parse(t, w)
	assert.Equal(t, "tours", doc.Find("body").AttrOr("data-view", ""))
	assert.Contains(t, doc.Find("h1").Text(), "Tour not found")
	assert.Equal(t, 1, doc.Find(`main a[href="/tours"]`).Length())
	assert.InDelta(t, 1, testutil.ToFloat64(site.metrics.HTTPErrorsTotal.WithLabelValues("not_found", "/tours/:id")), 0)
}

func TestTourDetail_NotCarriedOver(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	require.Equal(t, http.StatusOK, site.get("/tours/t1").Code)

	for _, path := range []string{"/", "/journal", "/students", "/careers", "/feedback"} {
		body := site.get(path).Body.String()
		assert.NotContains(t, body, "tour-detail", path)
		assert.NotContains(t, body, "Your Guide", path)
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	w := site.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, parse(t, w).Find("h1").Text(), "Page not found")
}

func TestPageViews_Recorded(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	site.get("/")
	site.get("/")
	site.get("/journal")
	site.get("/tours/missing")

	assert.InDelta(t, 2, testutil.ToFloat64(site.metrics.PageViewsTotal.WithLabelValues("home")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(site.metrics.PageViewsTotal.WithLabelValues("research")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(site.metrics.PageViewsTotal.WithLabelValues("tours")), 0)
}
