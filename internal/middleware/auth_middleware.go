package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/auth"
)

// actorKey is the gin context key the authenticated Actor is stored under.
const actorKey = "actor"

// AuthMiddleware builds the request Actor from the bearer token.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid bearer token. On success the
// Actor derived from the token claims is stored on the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, errDetail := m.resolveActor(c)
		if errDetail != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errDetail))
			return
		}

		c.Set(actorKey, *actor)
		c.Next()
	}
}

// OptionalJWTAuth stores an Actor when a valid bearer token is present and
// lets the request through anonymously otherwise. Listing endpoints use it
// to personalize responses without requiring login.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		actor, errDetail := m.resolveActor(c)
		if errDetail != nil {
			// A present but invalid token is rejected; silently ignoring
			// it would hide expiry from clients that sent one.
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errDetail))
			return
		}

		c.Set(actorKey, *actor)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveActor(c *gin.Context) (*appauth.Actor, *dto.ErrorDetail) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Authorization header missing")
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Invalid token format")
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		code := dto.ErrorCodeInvalidToken
		details := "Invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			code = dto.ErrorCodeExpiredToken
			details = "Token has expired"
		}
		return nil, dto.NewErrorDetail(code, "Authentication failed").WithDetails(details)
	}

	role := models.Role(claims.Role)
	if !role.Valid() {
		return nil, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").
			WithDetails("Unknown role claim")
	}

	return &appauth.Actor{ID: claims.UserID, Role: role}, nil
}

// AdminRequired rejects requests whose actor cannot review content. It
// must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		if !actor.Can(appauth.CapReviewContent) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Admin role required")))
			return
		}

		c.Next()
	}
}

// GetActor returns the authenticated Actor stored by JWTAuth, if any.
func GetActor(c *gin.Context) (appauth.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return appauth.Actor{}, false
	}
	actor, ok := value.(appauth.Actor)
	return actor, ok
}
