package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDispatcher struct {
	updates []tgbotapi.Update
}

func (f *fakeDispatcher) HandleUpdate(_ context.Context, update tgbotapi.Update) {
	f.updates = append(f.updates, update)
}

func setupRouter(d UpdateDispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewWebhookRoutes(router.Group("/"), d, "sekret")
	return router
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	d := &fakeDispatcher{}
	router := setupRouter(d)

	body := `{"update_id":1,"message":{"message_id":1,"from":{"id":100},"chat":{"id":100},"text":"hi"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, d.updates, 1)
	assert.Equal(t, "hi", d.updates[0].Message.Text)
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	d := &fakeDispatcher{}
	router := setupRouter(d)

	req := httptest.NewRequest(http.MethodPost, "/webhook/guess", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, d.updates)
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	d := &fakeDispatcher{}
	router := setupRouter(d)

	req := httptest.NewRequest(http.MethodPost, "/webhook/sekret", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, d.updates)
}

func TestHealthz(t *testing.T) {
	router := setupRouter(&fakeDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
