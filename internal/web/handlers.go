package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foti-africa/foti-web/internal/catalog"
	"github.com/foti-africa/foti-web/internal/chat"
	"github.com/foti-africa/foti-web/internal/errors"
	"github.com/foti-africa/foti-web/internal/feedback"
	"github.com/foti-africa/foti-web/internal/logger"
	"github.com/foti-africa/foti-web/internal/metrics"
	"github.com/foti-africa/foti-web/internal/ratelimit"
)

// featuredTourCount is how many tours the home page shows.
const featuredTourCount = 3

// Options configures a Handler.
type Options struct {
	Catalog     *catalog.Catalog
	Assistant   chat.Forwarder
	ChatEnabled bool // false shows the widget as offline
	Sessions    *chat.Store
	Feedback    *feedback.Service
	Limiter     *ratelimit.KeyedLimiter // nil = chat is not rate limited
	Metrics     *metrics.Metrics        // optional
	Logger      *logger.Logger

	MaxMessageLength int           // runes; 0 = unlimited
	SessionTTL       time.Duration // chat cookie lifetime
}

// Handler serves every site route.
type Handler struct {
	catalog   *catalog.Catalog
	assistant chat.Forwarder
	chatOn    bool
	sessions  *chat.Store
	feedback  *feedback.Service
	limiter   *ratelimit.KeyedLimiter
	metrics   *metrics.Metrics
	logger    *logger.Logger

	maxMessageLength int
	sessionTTL       time.Duration
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	return &Handler{
		catalog:          opts.Catalog,
		assistant:        opts.Assistant,
		chatOn:           opts.ChatEnabled,
		sessions:         opts.Sessions,
		feedback:         opts.Feedback,
		limiter:          opts.Limiter,
		metrics:          opts.Metrics,
		logger:           opts.Logger.WithModule("web"),
		maxMessageLength: opts.MaxMessageLength,
		sessionTTL:       opts.SessionTTL,
	}
}

// Register mounts the site routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.home)
	r.GET("/tours", h.tours)
	r.GET("/tours/:id", h.tour)
	r.GET("/journal", h.journal)
	r.GET("/students", h.students)
	r.GET("/careers", h.careers)

	r.GET("/feedback", h.feedbackForm)
	r.POST("/feedback", h.submitFeedback)
	r.GET("/feedback/thanks", h.feedbackThanks)

	r.GET("/api/chat", h.chatHistory)
	limited := r.Group("", h.rateLimit)
	limited.POST("/chat", h.chatForm)
	limited.POST("/api/chat", h.chatAPI)
}

// render writes a full page with the layout, navigation and chat widget.
func (h *Handler) render(c *gin.Context, status int, page string, view View, title string, data any) {
	if h.metrics != nil && status < http.StatusBadRequest {
		h.metrics.RecordPageView(string(view))
	}
	c.HTML(status, page, Page{
		View:  view,
		Title: title,
		Nav:   Nav,
		Path:  c.Request.URL.Path,
		Year:  currentYear(),
		Chat:  h.chatWidget(c),
		Data:  data,
	})
}

func (h *Handler) tourCards(tours []catalog.Tour) []TourCard {
	cards := make([]TourCard, len(tours))
	for i, t := range tours {
		cards[i] = TourCard{Tour: t, Curator: h.catalog.TourCurator(t)}
	}
	return cards
}

func (h *Handler) home(c *gin.Context) {
	h.render(c, http.StatusOK, "home", ViewHome, "Foundations of Tourism Institute", homeData{
		Pillars:  modelPillars,
		Featured: h.tourCards(h.catalog.FeaturedTours(featuredTourCount)),
	})
}

func (h *Handler) tours(c *gin.Context) {
	h.render(c, http.StatusOK, "tours", ViewTours, "Tour Marketplace", toursData{
		Cards: h.tourCards(h.catalog.Tours()),
	})
}

func (h *Handler) tour(c *gin.Context) {
	id := c.Param("id")
	t, err := h.catalog.LookupTour(id)
	if errors.IsNotFound(err) {
		if h.metrics != nil {
			h.metrics.RecordHTTPError("not_found", "/tours/:id")
		}
		h.render(c, http.StatusNotFound, "tour_not_found", ViewTours, "Tour Not Found", tourNotFoundData{ID: id})
		return
	}

	h.render(c, http.StatusOK, "tour", ViewTours, t.Title, tourData{
		Card: TourCard{Tour: t, Curator: h.catalog.TourCurator(t)},
	})
}

func (h *Handler) journal(c *gin.Context) {
	papers := h.catalog.Papers()
	entries := make([]PaperEntry, len(papers))
	for i, p := range papers {
		entries[i] = PaperEntry{Paper: p, Author: h.catalog.PaperAuthor(p)}
	}
	h.render(c, http.StatusOK, "journal", ViewResearch, "FoTI Journal", journalData{Entries: entries})
}

func (h *Handler) students(c *gin.Context) {
	h.render(c, http.StatusOK, "students", ViewStudents, "Our Talent Pool", studentsData{
		Students: h.catalog.Students(),
	})
}

func (h *Handler) careers(c *gin.Context) {
	h.render(c, http.StatusOK, "careers", ViewCareers, "Career Roadmap", careersData{Steps: careerSteps})
}

// NotFound renders the site's 404 page. Register it with engine.NoRoute.
func (h *Handler) NotFound(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError("not_found", "no_route")
	}
	h.render(c, http.StatusNotFound, "not_found", "", "Page Not Found", nil)
}
