package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safechat/internal/config"
	"safechat/internal/handler"
	"safechat/internal/middleware"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer wires the HTTP surface. chatbotHandler may be nil when the
// chatbot is disabled in configuration.
func NewServer(
	cfg *config.Config,
	messageHandler handler.MessageHandler,
	notificationHandler handler.NotificationHandler,
	chatbotHandler handler.ChatbotHandler,
	logger *zap.Logger,
) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}

	// Ping route for health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret), logger))
	{
		api.POST("/messages/send", messageHandler.Send)

		api.GET("/parent/notifications", notificationHandler.List)
		api.GET("/parent/notifications/unread_count", notificationHandler.UnreadCount)
		api.PUT("/parent/notifications/:id/read", notificationHandler.MarkRead)

		if chatbotHandler != nil {
			api.POST("/chatbot/ask", chatbotHandler.Ask)
		}
	}

	return s
}

func (s *Server) Run(addr string) error {
	s.logger.Info("Server starting", zap.String("addr", addr))
	return s.router.Run(addr)
}
