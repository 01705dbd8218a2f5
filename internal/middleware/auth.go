package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"barangayhub/api/internal/models"
	"barangayhub/api/internal/security"
)

const (
	ctxClaimsKey = "auth_claims"
	ctxTokenKey  = "auth_token"
)

// Auth validates the bearer token and stashes its claims on the context.
// Every failure mode (missing, malformed, expired, unsigned, revoked)
// produces the same generic 401.
func Auth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), tokenStr)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ctxClaimsKey, *claims)
		c.Set(ctxTokenKey, tokenStr)
		c.Next()
	}
}

// RequireRole restricts a route to callers whose token carries one of the
// given roles. A valid token with the wrong role gets the same 401 as an
// invalid token.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			unauthorized(c)
			return
		}
		if _, ok := roleSet[claims.Role]; !ok {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c *gin.Context) (security.Claims, bool) {
	val, exists := c.Get(ctxClaimsKey)
	if !exists {
		return security.Claims{}, false
	}
	claims, ok := val.(security.Claims)
	return claims, ok
}

// TokenFrom returns the raw token string stored by Auth.
func TokenFrom(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}

// tokenFromRequest extracts the credential with Authorization header
// precedence, then a token field in a JSON body, then a token query
// parameter.
func tokenFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if tok := tokenFromBody(c); tok != "" {
		return tok
	}
	return c.Query("token")
}

// tokenFromBody peeks at a JSON body for a token field, restoring the body
// so the handler can still bind it.
func tokenFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.Contains(c.ContentType(), "application/json") {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Token
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
