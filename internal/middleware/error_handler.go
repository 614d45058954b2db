package middleware

import (
	"papertrade-backend/internal/pkg/apperr"
	"papertrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler: the single adapter from domain
// errors to transport responses. Kinded errors keep their message and map
// kind → status; anything else becomes a generic 500 with no internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae := apperr.As(err); ae != nil {
		if ae.Kind == apperr.Internal {
			log.Error().Err(ae).Str("path", c.Path()).Msg("internal fault")
			return response.Error(c, "Internal Server Error", ae.Kind.Status())
		}
		return response.Error(c, ae.Message, ae.Kind.Status())
	}
	if e, ok := err.(*fiber.Error); ok {
		return response.Error(c, e.Message, e.Code)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled fault")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
}
