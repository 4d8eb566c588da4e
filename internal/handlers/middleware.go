package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxUserID is the gin context key under which requireAuth stores the
// authenticated user's id.
const ctxUserID = "userID"

const (
	bearerScheme = "Bearer"

	errMissingAuth   = "missing Authorization header"
	errMalformedAuth = "invalid Authorization header format"
	errBadToken      = "invalid or expired token"
)

// requireAuth gates the /api/v1 group behind a signed bearer token.
func (h *Handler) requireAuth(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		abortUnauthorized(c, errMissingAuth)
		return
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != bearerScheme || token == "" {
		abortUnauthorized(c, errMalformedAuth)
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		abortUnauthorized(c, errBadToken)
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
