package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"opentreasury/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie   = "session"
	identityKey     = "identity"
	unauthorizedMsg = "Unauthorized: You do not have admin access."
)

// sessionToken returns the request's session. The cookie is preferred; the
// bearer token is used when the cookie is missing or no longer verifies.
func sessionToken(c *gin.Context) string {
	cookie, _ := c.Cookie(sessionCookie)
	bearer := bearerToken(c)
	if cookie == "" {
		return bearer
	}
	if bearer == "" || bearer == cookie {
		return cookie
	}
	if _, err := gate.Authenticate(c.Request.Context(), cookie); !errors.Is(err, auth.ErrInvalidSession) {
		return cookie
	}
	return bearer
}

func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", cookieSecure, true)
}

// @Summary Sign in
// @Description Exchange an identity provider credential for an admin session. Emails outside the allow-list are signed out and rejected
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Provider credential"
// @Success 200 {object} map[string]interface{} "message, token and identity"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 401 {object} map[string]interface{} "Sign-in failed"
// @Failure 403 {object} map[string]interface{} "Not an admin"
// @Router /api/auth/login [post]
func login(c *gin.Context) {
	var request LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, identity, err := gate.Login(c.Request.Context(), request.Credential)
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": unauthorizedMsg})
		return
	case err != nil:
		slog.Warn("Login failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to login"})
		return
	}

	setSessionCookie(c, token, gate.SessionTTL())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Successfully logged in!",
		"token":    token,
		"identity": identity,
	})
}

// @Summary Sign out
// @Description Revoke the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Successfully logged out"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/auth/logout [post]
func logout(c *gin.Context) {
	if err := gate.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		slog.Error("Failed to revoke session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Current session
// @Description Identity gate state for the caller: anonymous, authenticated or admin
// @Tags auth
// @Produce json
// @Success 200 {object} auth.State "Current state"
// @Router /api/auth/session [get]
func getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gate.CurrentState(c.Request.Context(), sessionToken(c)))
}

// requireAdmin only lets allow-listed identities through
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := gate.Authenticate(c.Request.Context(), sessionToken(c))
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidSession) {
				slog.Error("Failed to verify session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !gate.IsAdmin(identity) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": unauthorizedMsg})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}
