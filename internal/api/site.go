package api

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"restoran/internal/booking"
	"restoran/internal/catalog"
	"restoran/internal/chat"
	"restoran/internal/logging"
	"restoran/internal/models"
	"restoran/internal/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed web
var webFS embed.FS

// SiteAPI serves the restaurant page and the endpoints behind it
type SiteAPI struct {
	Router  *gin.Engine
	Catalog *catalog.Catalog
	Hub     *chat.Hub
	Monitor *monitoring.Monitor
	log     *zap.Logger
}

// NewSiteAPI creates a new site API instance
func NewSiteAPI(cat *catalog.Catalog, hub *chat.Hub, monitor *monitoring.Monitor, log *zap.Logger) (*SiteAPI, error) {
	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(log))

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": func(item models.MenuItem) string { return item.DisplayPrice() },
	}).ParseFS(webFS, "web/templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(static))

	api := &SiteAPI{
		Router:  router,
		Catalog: cat,
		Hub:     hub,
		Monitor: monitor,
		log:     log,
	}

	api.setupRoutes()
	return api, nil
}

// setupRoutes configures all API endpoints
func (k *SiteAPI) setupRoutes() {
	k.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	k.Router.GET("/", k.Home)
	k.Router.GET("/ws/chat", k.ChatSocket)

	v1 := k.Router.Group("/api")
	{
		// Catalog
		v1.GET("/menu", k.GetMenu)
		v1.GET("/chefs", k.GetChefs)
		v1.GET("/testimonials", k.GetTestimonials)

		// Forms
		v1.POST("/booking", k.SubmitBooking)
		v1.POST("/contact", k.SubmitContact)
		v1.POST("/newsletter", k.Subscribe)

		// Chat
		v1.POST("/chat/sessions", k.OpenChat)
		v1.GET("/chat/sessions/:id/messages", k.GetChatMessages)
		v1.POST("/chat/sessions/:id/messages", k.SendChatMessage)
		v1.DELETE("/chat/sessions/:id", k.CloseChat)

		v1.GET("/metrics", k.GetMetrics)
		v1.GET("/metrics/:name", k.GetMetric)
	}
}

// Home renders the single page
func (k *SiteAPI) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":        "Restoran",
		"categories":   k.Catalog.Categories(),
		"menu":         k.Catalog.Menu(""),
		"chefs":        k.Catalog.Chefs(),
		"testimonials": k.Catalog.Reviews(),
	})
}

// Catalog handlers

func (k *SiteAPI) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, k.Catalog.Menu(c.Query("category")))
}

func (k *SiteAPI) GetChefs(c *gin.Context) {
	c.JSON(http.StatusOK, k.Catalog.Chefs())
}

func (k *SiteAPI) GetTestimonials(c *gin.Context) {
	c.JSON(http.StatusOK, k.Catalog.Reviews())
}

// Form handlers

func (k *SiteAPI) SubmitBooking(c *gin.Context) {
	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := booking.SubmitDraft(draft)
	k.Monitor.RecordBooking(outcome.Confirmed)

	if !outcome.Confirmed {
		c.JSON(http.StatusBadRequest, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (k *SiteAPI) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := booking.ValidateContact(msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": booking.ContactReceivedMessage})
}

func (k *SiteAPI) Subscribe(c *gin.Context) {
	var sub models.NewsletterSubscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := booking.ValidateSubscription(sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": booking.SubscribedMessage})
}

// Chat handlers

func (k *SiteAPI) OpenChat(c *gin.Context) {
	session := k.Hub.Open()
	k.Monitor.SetActiveSessions(k.Hub.Len())

	c.JSON(http.StatusCreated, gin.H{
		"id":       session.ID,
		"messages": session.Messages(),
	})
}

func (k *SiteAPI) GetChatMessages(c *gin.Context) {
	session, err := k.Hub.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	c.JSON(http.StatusOK, session.Messages())
}

func (k *SiteAPI) SendChatMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := k.Hub.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	msg, err := session.Send(req.Text)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, chat.ErrSessionClosed):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, msg)
}

func (k *SiteAPI) CloseChat(c *gin.Context) {
	if err := k.Hub.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}
	k.Monitor.SetActiveSessions(k.Hub.Len())

	c.JSON(http.StatusOK, gin.H{"message": "Chat session closed"})
}

// GetMetrics returns the in-process counters
func (k *SiteAPI) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, k.Monitor.GetMetrics())
}

// GetMetric returns one counter from the snapshot
func (k *SiteAPI) GetMetric(c *gin.Context) {
	name := c.Param("name")
	value, ok := k.Monitor.GetMetric(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Metric not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "value": value})
}
