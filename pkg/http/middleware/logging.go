package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Paths polled by infrastructure; logging them drowns out real traffic.
var quietPaths = map[string]bool{
	"/metrics":    true,
	"/api/health": true,
}

// RequestLogging logs completed HTTP requests with latency and size.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if quietPaths[req.URL.Path] {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			res := c.Response()
			log.Printf("[%s] %s %s - %d %dB (%s)",
				req.Method,
				req.RequestURI,
				c.RealIP(),
				res.Status,
				res.Size,
				time.Since(start),
			)
			return err
		}
	}
}
