package middleware

import (
	"context"

	"kindred/apperrors"
	"kindred/auth"
	"kindred/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the user stored by Protect.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}

// CurrentUser is the handler-side accessor. Routes behind Protect always
// have a user.
func CurrentUser(c *gin.Context) *models.User {
	u, _ := UserFromContext(c.Request.Context())
	return u
}

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Protect requires a valid session cookie and places the resolved user on
// the request context.
func Protect(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing cookie leaves token empty.
		token, _ := c.Cookie(auth.CookieName)

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr := apperrors.As(err)
			if appErr.Kind == apperrors.KindInternal {
				log.Error("auth middleware failed", zap.String("request_id", RequestID(c)), zap.Error(err))
			}
			c.AbortWithStatusJSON(appErr.Kind.Status(), gin.H{
				"success": false,
				"message": appErr.Message,
			})
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}
