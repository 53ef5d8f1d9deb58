package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/birthdaycard/internal/logging"
)

// NewRouter builds the gin engine with logging, recovery and the card
// routes.
func NewRouter(h *Handler, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(log), gin.Recovery())
	r.MaxMultipartMemory = h.maxUpload
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/cards", h.createCard)
		api.GET("/cards/:id", h.downloadCard)
		api.GET("/cards/:id/meta", h.cardMeta)
		api.GET("/cards/:id/qr", h.cardQR)
	}
}
