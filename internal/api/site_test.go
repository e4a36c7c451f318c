package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restoran/internal/api"
	"restoran/internal/booking"
	"restoran/internal/catalog"
	"restoran/internal/chat"
	"restoran/internal/concierge"
	"restoran/internal/models"
	"restoran/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const replyDelay = 20 * time.Millisecond

func newTestAPI(t *testing.T) *api.SiteAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	monitor := monitoring.NewMonitor()
	hub := chat.NewHub(concierge.MustDefault(), replyDelay, chat.WithReplyHook(func(r concierge.Reply) {
		monitor.RecordReply(r.Topic)
	}))
	site, err := api.NewSiteAPI(catalog.Default(), hub, monitor, zap.NewNop())
	require.NoError(t, err)
	return site
}

func doJSON(t *testing.T, site *api.SiteAPI, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	site.Router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHome(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "GET", "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Truffle Risotto")
	assert.Contains(t, body, "$42")
	assert.Contains(t, body, "Marcus Chen")
	assert.Contains(t, body, "Sarah Johnson")
	assert.Contains(t, body, "Book a Table")
}

func TestStaticAssets(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "GET", "/static/site.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/booking")
}

func TestGetMenu(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "GET", "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var menu []models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Len(t, menu, 6)

	w = doJSON(t, site, "GET", "/api/menu?category=dessert", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Chocolate Soufflé", menu[0].Name)
}

func TestGetChefsAndTestimonials(t *testing.T) {
	site := newTestAPI(t)

	var chefs []map[string]interface{}
	w := doJSON(t, site, "GET", "/api/chefs", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chefs))
	assert.Len(t, chefs, 4)
	for _, chef := range chefs {
		assert.Contains(t, chef, "name")
		assert.Contains(t, chef, "specialty")
	}

	var reviews []map[string]interface{}
	w = doJSON(t, site, "GET", "/api/testimonials", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 3)
}

func TestSubmitBooking(t *testing.T) {
	site := newTestAPI(t)
	draft := models.BookingDraft{
		Name: "Ada", Email: "ada@example.com", Phone: "555-0100",
		Date: "2026-10-24", Time: "19:30", Guests: "2",
	}

	w := doJSON(t, site, "POST", "/api/booking", draft)
	require.Equal(t, http.StatusOK, w.Code)
	var outcome booking.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.Confirmed)
	assert.Equal(t, booking.ConfirmedMessage, outcome.Message)

	draft.Time = ""
	w = doJSON(t, site, "POST", "/api/booking", draft)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.False(t, outcome.Confirmed)
	assert.Equal(t, booking.IncompleteMessage, outcome.Message)

	metrics := site.Monitor.GetMetrics()
	assert.Equal(t, 1, metrics["booking_confirmed"])
	assert.Equal(t, 1, metrics["booking_incomplete"])
}

func TestSubmitBooking_BadJSON(t *testing.T) {
	site := newTestAPI(t)

	req, _ := http.NewRequest("POST", "/api/booking", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	site.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestSubmitContact(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "POST", "/api/contact", models.ContactMessage{
		Name: "Sam", Email: "sam@example.com", Message: "Private dining?",
	})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), booking.ContactReceivedMessage)

	w = doJSON(t, site, "POST", "/api/contact", models.ContactMessage{Name: "Sam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeNewsletter(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "POST", "/api/newsletter", gin.H{"email": "lee@example.com"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), booking.SubscribedMessage)

	w = doJSON(t, site, "POST", "/api/newsletter", gin.H{"email": "not-an-address"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatSessionLifecycle(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "POST", "/api/chat/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var opened struct {
		ID       string               `json:"id"`
		Messages []models.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	require.Len(t, opened.Messages, 1)
	assert.Equal(t, concierge.Welcome, opened.Messages[0].Text)

	path := "/api/chat/sessions/" + opened.ID + "/messages"

	w = doJSON(t, site, "POST", path, gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, site, "POST", path, gin.H{"text": "What time do you open?"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var transcript []models.ChatMessage
	require.Eventually(t, func() bool {
		w := doJSON(t, site, "GET", path, nil)
		transcript = nil
		_ = json.Unmarshal(w.Body.Bytes(), &transcript)
		return len(transcript) == 3
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, models.SenderVisitor, transcript[1].Sender)
	assert.Equal(t, models.SenderBot, transcript[2].Sender)
	assert.Equal(t, concierge.TopicHours, transcript[2].Topic)

	require.Eventually(t, func() bool {
		return site.Monitor.GetMetrics()["chat_replies_hours"] == 1
	}, time.Second, 10*time.Millisecond)

	w = doJSON(t, site, "DELETE", "/api/chat/sessions/"+opened.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, site, "GET", path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatUnknownSession(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "POST", "/api/chat/sessions/nope/messages", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, site, "DELETE", "/api/chat/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMetrics(t *testing.T) {
	site := newTestAPI(t)

	w := doJSON(t, site, "GET", "/api/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response, "uptime_seconds")
}

func TestGetMetric(t *testing.T) {
	site := newTestAPI(t)
	doJSON(t, site, "POST", "/api/chat/sessions", nil)

	w := doJSON(t, site, "GET", "/api/metrics/chat_sessions_active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"chat_sessions_active","value":1}`, w.Body.String())

	w = doJSON(t, site, "GET", "/api/metrics/nothing_here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatSocket(t *testing.T) {
	site := newTestAPI(t)
	server := httptest.NewServer(site.Router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() models.ChatMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg models.ChatMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	welcome := read()
	assert.Equal(t, concierge.Welcome, welcome.Text)

	require.NoError(t, conn.WriteJSON(gin.H{"text": "  "}))
	require.NoError(t, conn.WriteJSON(gin.H{"text": "Can I get a reservation for tonight?"}))

	echo := read()
	assert.Equal(t, models.SenderVisitor, echo.Sender)
	assert.Equal(t, "Can I get a reservation for tonight?", echo.Text)

	reply := read()
	assert.Equal(t, models.SenderBot, reply.Sender)
	assert.Equal(t, concierge.TopicBooking, reply.Topic)

	assert.Equal(t, 1, site.Hub.Len())
	conn.Close()
	require.Eventually(t, func() bool { return site.Hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}
