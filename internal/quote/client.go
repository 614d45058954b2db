package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"papertrade-backend/internal/models"
	"papertrade-backend/internal/pkg/apperr"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	cachePrefix     = "quote:"
	cacheExpiration = 5 * time.Minute
	lookupTimeout   = 5 * time.Second
)

// Quote is the resolved price for a symbol.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Lookuper resolves a ticker symbol to a current quote. A nil quote with a
// nil error means the symbol is unknown; callers treat that as a validation
// failure. A non-nil error reports a provider failure (timeout, transport
// error, malformed body) and carries the upstream error kind.
type Lookuper interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// providerQuote is the upstream response shape.
type providerQuote struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	LatestPrice json.Number `json:"latestPrice"`
}

// Client fetches quotes over HTTP with a Redis cache in front and persists
// a snapshot row for every price the provider actually returned.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Rdb     *redis.Client
	DB      *gorm.DB
}

func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil
	}

	if q := c.cached(ctx, symbol); q != nil {
		return q, nil
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/stable/stock/%s/quote?token=%s", c.BaseURL, symbol, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "quote request could not be built", err)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("quote lookup failed")
		return nil, apperr.Wrap(apperr.Upstream, "quote provider unreachable", err)
	}
	defer resp.Body.Close()

	// The provider answers 404 for symbols it does not know.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("symbol", symbol).Msg("quote lookup rejected")
		return nil, apperr.New(apperr.Upstream, "quote provider unavailable")
	}

	var pq providerQuote
	raw := json.NewDecoder(resp.Body)
	raw.UseNumber()
	if err := raw.Decode(&pq); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("quote payload malformed")
		return nil, apperr.Wrap(apperr.Upstream, "quote payload malformed", err)
	}
	if pq.Symbol == "" || pq.LatestPrice == "" {
		return nil, apperr.New(apperr.Upstream, "quote payload incomplete")
	}
	price, err := decimal.NewFromString(pq.LatestPrice.String())
	if err != nil || !price.IsPositive() {
		log.Warn().Str("symbol", symbol).Str("price", pq.LatestPrice.String()).Msg("quote price unusable")
		return nil, apperr.New(apperr.Upstream, "quote price unusable")
	}

	q := &Quote{Symbol: pq.Symbol, Name: pq.CompanyName, Price: price}
	c.snapshot(q, pq)
	c.cache(ctx, symbol, q)
	return q, nil
}

func (c *Client) cached(ctx context.Context, symbol string) *Quote {
	if c.Rdb == nil {
		return nil
	}
	b, err := c.Rdb.Get(ctx, cachePrefix+symbol).Bytes()
	if err != nil {
		return nil
	}
	var q Quote
	if err := json.Unmarshal(b, &q); err != nil {
		return nil
	}
	return &q
}

func (c *Client) cache(ctx context.Context, symbol string, q *Quote) {
	if c.Rdb == nil {
		return
	}
	b, _ := json.Marshal(q)
	if err := c.Rdb.Set(ctx, cachePrefix+symbol, b, cacheExpiration).Err(); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("quote cache write failed")
	}
}

// snapshot persists the fetched price with its raw payload. Best effort:
// a failed insert must not fail the lookup.
func (c *Client) snapshot(q *Quote, pq providerQuote) {
	if c.DB == nil {
		return
	}
	payload, _ := json.Marshal(pq)
	row := models.QuoteSnapshot{
		Symbol:    q.Symbol,
		Price:     q.Price,
		Payload:   datatypes.JSON(payload),
		FetchedAt: time.Now(),
	}
	if err := c.DB.Create(&row).Error; err != nil {
		log.Warn().Err(err).Str("symbol", q.Symbol).Msg("quote snapshot write failed")
	}
}
