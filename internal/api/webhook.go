package api

import (
	"context"
	"net/http"

	"socrates-bot/pkg/logger"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// UpdateDispatcher consumes one Telegram update.
type UpdateDispatcher interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

type webhookRoutes struct {
	d      UpdateDispatcher
	secret string
}

func NewWebhookRoutes(handler *gin.RouterGroup, d UpdateDispatcher, secret string) {
	r := &webhookRoutes{d: d, secret: secret}

	handler.POST("/webhook/:secret", r.HandleTelegramUpdate)
	handler.GET("/healthz", r.Health)
}

// HandleTelegramUpdate accepts the Bot API push payload and forwards it
// into event processing. The secret path segment is the only inbound
// authentication; a mismatch looks like any other unknown route.
func (r *webhookRoutes) HandleTelegramUpdate(c *gin.Context) {
	if c.Param("secret") != r.secret {
		c.Status(http.StatusNotFound)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Logger().Error("failed to bind update", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	r.d.HandleUpdate(c.Request.Context(), update)
	c.Status(http.StatusOK)
}

func (r *webhookRoutes) Health(c *gin.Context) {
	c.Status(http.StatusOK)
}
