package handlers

import (
	"net/http"

	"kindred/auth"
	"kindred/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var req auth.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "signup", err)
		return
	}
	user, err = h.engine.Hydrate(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, "signup", err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}
	user, err = h.engine.Hydrate(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout only clears the cookie. Tokens are not revoked server-side.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.engine.Hydrate(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.respondError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(auth.SessionTTL.Seconds()), "/", "", h.secureCookies, true)
}
