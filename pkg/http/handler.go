package http

import "github.com/labstack/echo/v4"

// Handler registers a group of routes on the server's Echo instance.
// The API handler in internal/handler implements this.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
