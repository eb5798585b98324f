package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechat/internal/models"
)

// MessageFilter is the pipeline capability the handler calls.
type MessageFilter interface {
	FilterMessage(ctx context.Context, content, senderUsername, receiverUsername string) models.FilteredMessage
}

type MessageHandler interface {
	Send(c *gin.Context)
}

type messageHandler struct {
	pipeline MessageFilter
	logger   *zap.Logger
}

func NewMessageHandler(pipeline MessageFilter, logger *zap.Logger) MessageHandler {
	return &messageHandler{pipeline: pipeline, logger: logger}
}

// SendMessageRequest is the payload for POST /api/messages/send. All fields
// are required; structurally invalid input is rejected here, not by the
// pipeline.
type SendMessageRequest struct {
	SenderChildUsername   string `json:"sender_child_username" binding:"required"`
	ReceiverChildUsername string `json:"receiver_child_username" binding:"required"`
	Content               string `json:"content" binding:"required"`
}

// Send handles POST /api/messages/send. The response carries the masked
// content for the caller to deliver; classification problems never fail the
// request.
func (h *messageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for message send", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := h.pipeline.FilterMessage(c.Request.Context(), req.Content, req.SenderChildUsername, req.ReceiverChildUsername)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Message processed successfully",
		"content":         filtered.Content,
		"is_filtered":     filtered.IsFiltered,
		"risk_type":       filtered.RiskType,
		"risk_level":      filtered.RiskLevel,
		"parent_notified": filtered.ShouldNotifyParent,
	})
}
