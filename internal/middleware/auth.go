package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cardmock-backend/internal/config"
	"cardmock-backend/internal/models"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
	OrgIDKey    = "org_id"
	RoleKey     = "org_role"
)

const RoleAdmin = "admin"

// Principal is the identity the upstream auth provider resolved for this
// request.
type Principal struct {
	UserID   string
	UserName string
	OrgID    string
	Role     string
}

// AuthMiddleware validates the Bearer JWT issued by the identity provider and
// stores the caller's user id, organization id, and role in the gin context.
// Tokens are HS256 signed with the shared secret; claims carry the user id in
// "sub", and the active organization in "org_id"/"org_role".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abortUnauthorized(c, "empty token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.AuthJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.AuthJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			var message string
			switch {
			case strings.Contains(err.Error(), "signature is invalid"):
				message = "token signature is invalid"
			case strings.Contains(err.Error(), "token is expired"):
				message = "token has expired"
			default:
				message = err.Error()
			}
			abortUnauthorized(c, message)
			return
		}

		if !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			abortUnauthorized(c, "missing user id in token")
			return
		}

		orgID, ok := claims["org_id"].(string)
		if !ok || orgID == "" {
			abortUnauthorized(c, "missing organization in token")
			return
		}

		role, _ := claims["org_role"].(string)
		if role == "" {
			role = "member"
		}

		// Display name comes from the token, never from request headers.
		name, _ := claims["name"].(string)
		if name == "" {
			name = sub
		}

		c.Set(UserIDKey, sub)
		c.Set(UserNameKey, name)
		c.Set(OrgIDKey, orgID)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireRole gates a route group to callers holding the given org role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(RoleKey)
		if !exists || got.(string) != role {
			c.JSON(http.StatusForbidden, models.Envelope{
				Success: false,
				Error: &models.APIError{
					Code:    "forbidden",
					Message: "this action requires the " + role + " role",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom reads the authenticated principal out of the gin context.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return Principal{}, false
	}
	orgID, ok := c.Get(OrgIDKey)
	if !ok {
		return Principal{}, false
	}
	role, _ := c.Get(RoleKey)
	roleStr, _ := role.(string)
	name, _ := c.Get(UserNameKey)
	nameStr, _ := name.(string)
	if nameStr == "" {
		nameStr = userID.(string)
	}
	return Principal{
		UserID:   userID.(string),
		UserName: nameStr,
		OrgID:    orgID.(string),
		Role:     roleStr,
	}, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.Envelope{
		Success: false,
		Error:   &models.APIError{Code: "auth_error", Message: message},
	})
	c.Abort()
}
