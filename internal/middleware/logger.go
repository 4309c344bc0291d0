package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/leadforge/b2b-api/internal/logs"
)

// RequestLogger logs one structured line per request: method, path,
// status, duration and the authenticated user when present.  It runs after
// JWTAuth on protected groups so the user field is populated there.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logs.Logger.WithFields(logrus.Fields{
				"method":   c.Request().Method,
				"path":     c.Request().URL.Path,
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
				"user":     currentUserID(c),
				"ip":       c.RealIP(),
			}).Info("request")
			return err
		}
	}
}
