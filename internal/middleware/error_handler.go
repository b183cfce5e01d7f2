package middleware

import (
	"catalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler returns a Fiber error handler that translates any error
// raised during dispatch or handling into the uniform JSON envelope
// {error, message, status}. Each failure is logged server-side before the
// response is written; internal details never reach the client.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := apperrors.From(err)

		entry := log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": appErr.Status,
			"kind":   appErr.Kind,
		})
		if appErr.Status >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.Warn(appErr.Message)
		}

		return c.Status(appErr.Status).JSON(appErr)
	}
}
