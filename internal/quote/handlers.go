package quote

import (
	"papertrade-backend/internal/pkg/apperr"
	"papertrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var (
	errSymbolRequired = apperr.New(apperr.Validation, "must provide symbol")
	errInvalidSymbol  = apperr.New(apperr.Validation, "Invalid Symbol")
)

// Handlers serves the quote view.
type Handlers struct {
	Quotes Lookuper
}

// Form GET /quote
func (h *Handlers) Form(c *fiber.Ctx) error {
	return response.Success(c, "Get a quote", fiber.Map{
		"fields": []string{"symbol"},
	})
}

// Quote POST /quote — resolve a symbol to its current price.
func (h *Handlers) Quote(c *fiber.Ctx) error {
	symbol := c.FormValue("symbol")
	if symbol == "" {
		return errSymbolRequired
	}

	q, err := h.Quotes.Lookup(c.Context(), symbol)
	if err != nil {
		return err
	}
	if q == nil {
		return errInvalidSymbol
	}

	return response.Success(c, "Quote", fiber.Map{
		"symbol": q.Symbol,
		"name":   q.Name,
		"price":  q.Price,
	})
}
