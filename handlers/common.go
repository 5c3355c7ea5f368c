package handlers

import (
	"context"
	"net/http"

	"kindred/apperrors"
	"kindred/auth"
	"kindred/chat"
	"kindred/matching"
	"kindred/middleware"
	"kindred/profile"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth          *auth.Service
	engine        *matching.Engine
	chat          *chat.Service
	profiles      *profile.Service
	pinger        Pinger
	secureCookies bool
	log           *zap.Logger
}

type Deps struct {
	Auth          *auth.Service
	Engine        *matching.Engine
	Chat          *chat.Service
	Profiles      *profile.Service
	Pinger        Pinger
	SecureCookies bool
	Log           *zap.Logger
}

func New(d Deps) *Handler {
	return &Handler{
		auth:          d.Auth,
		engine:        d.Engine,
		chat:          d.Chat,
		profiles:      d.Profiles,
		pinger:        d.Pinger,
		secureCookies: d.SecureCookies,
		log:           d.Log,
	}
}

// respondError writes the client-facing message for err. Internal details
// stay in the log.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	appErr := apperrors.As(err)
	if appErr.Kind == apperrors.KindInternal {
		h.log.Error("request failed",
			zap.String("op", op),
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
	}
	c.JSON(appErr.Kind.Status(), gin.H{
		"success": false,
		"message": appErr.Message,
	})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

func parseUserID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			h.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
