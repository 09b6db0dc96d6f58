package server

import (
	"errors"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errorHandler is the single place handler errors become HTTP responses.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}

	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// respondErrors renders handler errors before the outer middleware unwinds,
// so metrics, tracing and request logs see the final status code.
func (s *Server) respondErrors(c *fiber.Ctx) error {
	if err := c.Next(); err != nil {
		return s.errorHandler(c, err)
	}
	return nil
}
