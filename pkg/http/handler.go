package http

import "github.com/labstack/echo/v4"

// Handler defines HTTP route registration interface.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// CompositeHandler registers several handlers as one.
type CompositeHandler []Handler

func (h CompositeHandler) RegisterRoutes(e *echo.Echo) {
	for _, handler := range h {
		if handler != nil {
			handler.RegisterRoutes(e)
		}
	}
}
