package portfolio

import "papertrade-backend/internal/pkg/apperr"

var (
	ErrSymbolRequired = apperr.New(apperr.Validation, "must provide Stock")
	ErrSharesRequired = apperr.New(apperr.Validation, "must provide Number of Stocks")
	ErrSharesInvalid  = apperr.New(apperr.Validation, "Number of Stocks must be a whole number")
	ErrSharesTooFew   = apperr.New(apperr.Validation, "0 or Negative Number of Stocks")
	ErrUnknownSymbol  = apperr.New(apperr.Validation, "Stock doesn't exist!")

	ErrInsufficientFunds  = apperr.New(apperr.BusinessRule, "You don't have enough cash for the transaction")
	ErrNoPosition         = apperr.New(apperr.BusinessRule, "You don't have this Stock!")
	ErrInsufficientShares = apperr.New(apperr.BusinessRule, "You don't have that amount of Shares to sell")
)
