package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogging assigns request id to every request and logs method, path,
// status and latency once the request is handled
func RequestLogging(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.WithFields(logrus.Fields{
				"requestId": requestID,
				"method":    c.Request().Method,
				"uri":       c.Request().RequestURI,
				"status":    c.Response().Status,
				"latency":   time.Since(start).String(),
			}).Info("request handled")

			return err
		}
	}
}
