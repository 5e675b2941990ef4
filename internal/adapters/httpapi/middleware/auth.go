package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userID"
	CookieName = "auth_token"
	loginPath  = "/auth/login/"
)

// JWTAuth gates a route on a valid token. Browser-style navigation gets the
// fail-soft treatment: unauthenticated requests are redirected to the login
// page with the original path in next.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseToken(c, secret)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalJWTAuth records the viewer's identity when a valid token is present
// but never blocks the request.
func OptionalJWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := parseToken(c, secret); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by the auth middleware, or ""
// for anonymous requests.
func UserID(c *gin.Context) string {
	userID, _ := c.Get(userIDKey)
	s, _ := userID.(string)
	return s
}

func parseToken(c *gin.Context, secret []byte) (string, error) {
	raw := bearerToken(c)
	if raw == "" {
		var err error
		if raw, err = c.Cookie(CookieName); err != nil {
			return "", err
		}
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
