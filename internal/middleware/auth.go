package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vales/internal/pkg/jwt"
	"vales/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxUserName = "user_name"
	CtxLocal    = "local"
)

var ErrAccountDisabled = errors.New("account disabled")

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Identity is the live view of a user as seen by request handlers.
type Identity struct {
	UserID int64
	Role   string
	Name   string
	Local  string
	Active bool
}

// IdentityLookup resolves the current role of a token subject, so role
// changes and deactivations apply before the token expires.
type IdentityLookup interface {
	Lookup(ctx context.Context, userID int64) (Identity, error)
}

// JWTAuth authenticates by "Authorization: Bearer <token>". When lookup is
// nil the role from the token is trusted.
func JWTAuth(tokens TokenValidator, lookup IdentityLookup) gin.HandlerFunc {
	return authenticate(tokens, lookup, false)
}

// JWTAuthWithQuery also accepts ?token=, for websocket upgrades where
// browsers can not set headers.
func JWTAuthWithQuery(tokens TokenValidator, lookup IdentityLookup) gin.HandlerFunc {
	return authenticate(tokens, lookup, true)
}

func authenticate(tokens TokenValidator, lookup IdentityLookup, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code := bearerToken(c, allowQuery)
		if code != "" {
			msg := "Authorization header is required"
			if code == "INVALID_AUTH_FORMAT" {
				msg = "Authorization header must be Bearer <token>"
			}
			response.Abort(c, http.StatusUnauthorized, code, msg)
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		id := Identity{UserID: claims.UserID, Role: claims.Role, Active: true}
		if lookup != nil {
			id, err = lookup.Lookup(c.Request.Context(), claims.UserID)
			if err != nil {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "User no longer exists")
				return
			}
		}
		if !id.Active {
			response.Abort(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled")
			return
		}

		c.Set(CtxUserID, id.UserID)
		c.Set(CtxRole, id.Role)
		c.Set(CtxUserName, id.Name)
		c.Set(CtxLocal, id.Local)
		c.Next()
	}
}

func bearerToken(c *gin.Context, allowQuery bool) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if allowQuery {
			if t := c.Query("token"); t != "" {
				return t, ""
			}
		}
		return "", "AUTH_HEADER_MISSING"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "INVALID_AUTH_FORMAT"
	}
	return strings.TrimSpace(parts[1]), ""
}

func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(CtxRole)
}

func UserName(c *gin.Context) string {
	return c.GetString(CtxUserName)
}
