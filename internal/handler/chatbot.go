package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechat/internal/service"
)

type ChatbotHandler interface {
	Ask(c *gin.Context)
}

type chatbotHandler struct {
	bot    *service.Chatbot
	logger *zap.Logger
}

func NewChatbotHandler(bot *service.Chatbot, logger *zap.Logger) ChatbotHandler {
	return &chatbotHandler{bot: bot, logger: logger}
}

type ChatbotRequest struct {
	ChildUsername string `json:"child_username" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// Ask handles POST /api/chatbot/ask.
func (h *chatbotHandler) Ask(c *gin.Context) {
	var req ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for chatbot ask", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.bot.Reply(c.Request.Context(), req.ChildUsername, req.Message)

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
