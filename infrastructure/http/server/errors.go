package server

import (
	"chat-room/errors"
	goerrors "errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case goerrors.Is(err, errors.ErrParticipantAlreadyExists):
		return http.StatusConflict
	case goerrors.Is(err, errors.ErrParticipantNotFound):
		return http.StatusNotFound
	case goerrors.Is(err, errors.ErrInvalidParticipant),
		goerrors.Is(err, errors.ErrInvalidMessage),
		goerrors.Is(err, errors.ErrUnknownSender),
		goerrors.Is(err, errors.ErrInvalidLimit),
		goerrors.Is(err, errors.ErrInvalidSearch):
		return http.StatusUnprocessableEntity
	case goerrors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the JSON error body. Unexpected failures are logged
// and answered with a generic message.
func (s *ChatServer) handleError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = http.StatusText(http.StatusInternalServerError)
	}
	return c.Status(status).JSON(errorResponse{Error: message})
}

// logRequest writes one access log line per request. Errors are rendered here
// so the logged status is the one sent to the client.
func (s *ChatServer) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	s.log.Debug("HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"user", c.Get(userHeader),
		"duration", time.Since(start),
	)
	return nil
}
