package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key the verified owner id is stored
// under.
const ContextUserID = "userID"

// ErrorResponse is the standardized error payload. It mirrors the one in
// internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FirebaseAuth verifies the Firebase ID token in the Authorization header
// and stores the token's UID in the request context. Every route behind
// it is scoped to that owner.
func FirebaseAuth(client *auth.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			log.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(ContextUserID, token.UID)
		c.Next()
	}
}

// LocalAuth is the LOCAL_MODE stand-in for FirebaseAuth: the owner id
// comes from the X-User-ID header, defaulting to a fixed demo owner. It
// must never be mounted when a real Firebase client is configured.
func LocalAuth(defaultOwner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader("X-User-ID")
		if owner == "" {
			owner = defaultOwner
		}
		c.Set(ContextUserID, owner)
		c.Next()
	}
}

// OwnerID extracts the verified owner id set by the auth middleware.
func OwnerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
