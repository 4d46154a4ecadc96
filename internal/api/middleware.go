package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serenelabs/serene/internal/auth"
)

const (
	ctxUserID = "user_id"
	ctxClaims = "claims"
)

// authenticate validates the bearer token and stashes the caller's identity
// on the request context.
func authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// userID returns the authenticated caller's id. Only valid behind
// authenticate.
func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// requestLogger logs one line per request. Message bodies are never logged;
// they may contain sensitive disclosures.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
