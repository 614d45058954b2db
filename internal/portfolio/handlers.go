package portfolio

import (
	"strconv"

	"papertrade-backend/internal/middleware"
	"papertrade-backend/internal/pkg/response"
	"papertrade-backend/internal/quote"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the portfolio view and the buy/sell forms.
type Handlers struct {
	Service *Service
	Quotes  quote.Lookuper
}

// tradeRequest is the validated form input shared by buy and sell. All type
// coercion happens here, before any business logic runs.
type tradeRequest struct {
	Symbol string
	Shares int64
}

func parseTrade(c *fiber.Ctx) (*tradeRequest, error) {
	symbol := c.FormValue("select")
	number := c.FormValue("number")

	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if number == "" {
		return nil, ErrSharesRequired
	}
	shares, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return nil, ErrSharesInvalid
	}
	if shares < 1 {
		return nil, ErrSharesTooFew
	}
	return &tradeRequest{Symbol: symbol, Shares: shares}, nil
}

// resolve looks up the current quote; an unknown symbol is a validation
// rejection, a provider failure keeps its upstream kind.
func (h *Handlers) resolve(c *fiber.Ctx, symbol string) (*quote.Quote, error) {
	q, err := h.Quotes.Lookup(c.Context(), symbol)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrUnknownSymbol
	}
	return q, nil
}

// Index GET / — holdings, cash and the grand total (cash + position values).
func (h *Handlers) Index(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	holdings, err := h.Service.Holdings(c.Context(), userID)
	if err != nil {
		return err
	}
	cash, err := h.Service.Cash(c.Context(), userID)
	if err != nil {
		return err
	}

	grandTotal := cash
	for _, holding := range holdings {
		grandTotal = grandTotal.Add(holding.Total)
	}

	return response.Success(c, "Portfolio", fiber.Map{
		"portfolio":   holdings,
		"cash":        cash,
		"grand_total": grandTotal,
	})
}

// BuyForm GET /buy
func (h *Handlers) BuyForm(c *fiber.Ctx) error {
	return response.Success(c, "Buy", fiber.Map{
		"fields": []string{"select", "number"},
	})
}

// Buy POST /buy — validate, resolve the quote, apply the purchase,
// redirect home.
func (h *Handlers) Buy(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	req, err := parseTrade(c)
	if err != nil {
		return err
	}
	q, err := h.resolve(c, req.Symbol)
	if err != nil {
		return err
	}

	if err := h.Service.Buy(c.Context(), userID, q, req.Shares); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SellForm GET /sell
func (h *Handlers) SellForm(c *fiber.Ctx) error {
	return response.Success(c, "Sell", fiber.Map{
		"fields": []string{"select", "number"},
	})
}

// Sell POST /sell — validate, resolve the current price, apply the sale,
// redirect home.
func (h *Handlers) Sell(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	req, err := parseTrade(c)
	if err != nil {
		return err
	}
	q, err := h.resolve(c, req.Symbol)
	if err != nil {
		return err
	}

	if err := h.Service.Sell(c.Context(), userID, q, req.Shares); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
