package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

// OptionalAuthMiddleware never rejects a request. A valid access token only
// marks the request as logged in by setting user_id (and role).
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ambil token dari cookie
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenString == "" || secret == "" {
			// Tidak ada token → lanjut sebagai guest
			c.Next()
			return
		}

		claims, err := parseClaims(tokenString, secret)
		if err != nil {
			// Token ada tapi invalid / expired → tetap lanjut (anggap guest)
			c.Next()
			return
		}

		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			c.Set(UserIDKey, userID)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleKey, role)
		}

		c.Next()
	}
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
