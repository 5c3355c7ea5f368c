package handlers

import (
	"net/http"

	"kindred/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SwipeRight(c *gin.Context) {
	targetID, ok := parseUserID(c, "likedUserId")
	if !ok {
		h.badRequest(c, "Invalid user ID")
		return
	}

	user, err := h.engine.SwipeRight(c.Request.Context(), middleware.CurrentUser(c), targetID)
	if err != nil {
		h.respondError(c, "swipe right", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) SwipeLeft(c *gin.Context) {
	targetID, ok := parseUserID(c, "dislikedUserId")
	if !ok {
		h.badRequest(c, "Invalid user ID")
		return
	}

	user, err := h.engine.SwipeLeft(c.Request.Context(), middleware.CurrentUser(c), targetID)
	if err != nil {
		h.respondError(c, "swipe left", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) GetMatches(c *gin.Context) {
	matches, err := h.engine.Matches(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.respondError(c, "get matches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "matches": matches})
}

func (h *Handler) GetUserProfiles(c *gin.Context) {
	users, err := h.engine.Candidates(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.respondError(c, "get user profiles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}
