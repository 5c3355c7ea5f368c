package handlers

import (
	"net/http"

	"kindred/middleware"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	msg, err := h.chat.Send(c.Request.Context(), middleware.CurrentUser(c), req.ReceiverID, req.Content)
	if err != nil {
		h.respondError(c, "send message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

func (h *Handler) GetConversation(c *gin.Context) {
	otherID, ok := parseUserID(c, "userId")
	if !ok {
		h.badRequest(c, "Invalid user ID")
		return
	}

	msgs, err := h.chat.Conversation(c.Request.Context(), middleware.CurrentUser(c), otherID)
	if err != nil {
		h.respondError(c, "get conversation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": msgs})
}
