package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

// AlertHandler exposes the alert channel settings and manual scans.
type AlertHandler struct {
	facade AlertFacade
}

// NewAlertHandler constructs AlertHandler.
func NewAlertHandler(facade AlertFacade) *AlertHandler {
	return &AlertHandler{facade: facade}
}

// Scan handles POST /api/alerts/scan.
func (h *AlertHandler) Scan(c *gin.Context) {
	alerts, err := h.facade.ScanAlerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, dto.AlertResponse{OrderID: a.Order.ID, Tier: string(a.Tier), DaysRemaining: a.DaysRemaining})
	}
	c.JSON(http.StatusOK, resp)
}

// Telegram handles GET /api/settings/telegram.
func (h *AlertHandler) Telegram(c *gin.Context) {
	cfg, err := h.facade.TelegramConfig(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TelegramSettings{BotToken: cfg.BotToken, ChatID: cfg.ChatID})
}

// SaveTelegram handles PUT /api/settings/telegram.
func (h *AlertHandler) SaveTelegram(c *gin.Context) {
	var req dto.TelegramSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.facade.SaveTelegramConfig(c.Request.Context(), model.TelegramConfig{BotToken: req.BotToken, ChatID: req.ChatID}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TestTelegram handles POST /api/settings/telegram/test.
func (h *AlertHandler) TestTelegram(c *gin.Context) {
	if err := h.facade.TestTelegram(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
