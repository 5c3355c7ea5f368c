package handlers

import (
	"net/http"

	"kindred/middleware"
	"kindred/profile"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profile.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	user, err := h.profiles.Update(ctx, middleware.CurrentUser(c), req)
	if err != nil {
		h.respondError(c, "update profile", err)
		return
	}
	user, err = h.engine.Hydrate(ctx, user)
	if err != nil {
		h.respondError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
