package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/eventsphere/internal/app/auth"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware rejects requests without a valid bearer token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if !m.authenticate(c, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalJWTAuth middleware identifies the user when a token is sent and lets anonymous requests through
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !m.authenticate(c, authHeader) {
				return
			}
		}
		c.Next()
	}
}

// authenticate validates the header and stores the user on the context.
// It aborts the request and returns false on failure.
func (m *AuthMiddleware) authenticate(c *gin.Context, authHeader string) bool {
	// some clients wrap the header value in quotes
	tokenString, err := auth.ExtractBearerToken(strings.Trim(authHeader, "\"'"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Invalid token format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return false
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		errorCode := dto.ErrorCodeInvalidToken
		errorDetails := "Invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			errorCode = dto.ErrorCodeExpiredToken
			errorDetails = "Token has expired"
		}

		errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Request = c.Request.WithContext(appauth.WithUser(c.Request.Context(), claims.UserID, claims.Username))
	return true
}

// CurrentUserID returns the authenticated user's ID or ErrUnauthenticated
func CurrentUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return 0, apperrors.ErrUnauthenticated
	}
	id, ok := userID.(int64)
	if !ok || id <= 0 {
		return 0, apperrors.ErrUnauthenticated
	}
	return id, nil
}
