package history

import (
	"papertrade-backend/internal/middleware"
	"papertrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the transaction history view.
type Handlers struct {
	Service *Service
}

// List GET /history — every buy and sell for the session user, oldest first.
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	rows, err := h.Service.ListForUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.Success(c, "History", fiber.Map{
		"transactions": rows,
	})
}
