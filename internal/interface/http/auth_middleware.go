package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jpalima/habagat/internal/infra/config"
)

// authMiddleware validates HS256 bearer tokens on the mutating endpoints.
// A no-op when auth is disabled in config, which is the dev default.
func authMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		if err := validateToken(cfg, strings.TrimSpace(parts[1])); err != nil {
			abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_token", err.Error(), err))
			return
		}
		c.Next()
	}
}

func validateToken(cfg config.AuthConfig, tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
