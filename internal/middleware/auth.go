package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/response"
	"community-feed-api/internal/util"
)

// AdminKeyHeader carries the moderator API key
const AdminKeyHeader = "X-Admin-Key"

var (
	errMissingHeader = errors.New("authorization header is required")
	errHeaderFormat  = errors.New("invalid authorization header format")
	errInvalidToken  = errors.New("invalid or expired token")
	errNoUserID      = errors.New("user id not found in token")
	errBadUserID     = errors.New("invalid user id format")
)

// Auth requires a valid bearer token and puts the actor on the request context
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := authenticate(c, jwtSecret)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, err.Error())
			c.Abort()
			return
		}
		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth accepts anonymous requests. A token that is present must be valid.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		actor, err := authenticate(c, jwtSecret)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, err.Error())
			c.Abort()
			return
		}
		setActor(c, actor)
		c.Next()
	}
}

// AdminKey guards moderator routes. An empty configured key disables them.
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminKeyHeader)
		if provided == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Admin key is required")
			c.Abort()
			return
		}
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Invalid admin key")
			c.Abort()
			return
		}
		c.Next()
	}
}

func setActor(c *gin.Context, actor domain.Actor) {
	c.Set("user_id", actor.ID)
	c.Request = c.Request.WithContext(util.WithActor(c.Request.Context(), actor))
}

func authenticate(c *gin.Context, jwtSecret string) (domain.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.Actor{}, errMissingHeader
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return domain.Actor{}, errHeaderFormat
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, errInvalidToken
	}
	return actorFromClaims(claims)
}

// actorFromClaims reads the user id from user_id, sub or uid and the
// display name from name or preferred_username
func actorFromClaims(claims jwt.MapClaims) (domain.Actor, error) {
	var userIDStr string
	for _, key := range []string{"user_id", "sub", "uid"} {
		if v, ok := claims[key].(string); ok && v != "" {
			userIDStr = v
			break
		}
	}
	if userIDStr == "" {
		return domain.Actor{}, errNoUserID
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil || userID == uuid.Nil {
		return domain.Actor{}, errBadUserID
	}

	name, _ := claims["name"].(string)
	if name == "" {
		name, _ = claims["preferred_username"].(string)
	}
	return domain.Actor{ID: userID, Name: name}, nil
}
