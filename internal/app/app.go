package app

import (
	"papertrade-backend/internal/auth"
	"papertrade-backend/internal/config"
	"papertrade-backend/internal/database"
	"papertrade-backend/internal/health"
	"papertrade-backend/internal/history"
	"papertrade-backend/internal/middleware"
	"papertrade-backend/internal/portfolio"
	"papertrade-backend/internal/quote"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	quotes := &quote.Client{
		BaseURL: cfg.QuoteBaseURL,
		APIKey:  cfg.QuoteAPIKey,
		Rdb:     rdb,
		DB:      db,
	}

	Register(app, db, rdb, quotes, sessionCfg)
	return app, db, rdb, nil
}

// Register mounts all routes on an app whose session middleware is already
// installed. Split from CreateApp so tests can wire sqlite + miniredis.
func Register(app *fiber.App, db *gorm.DB, rdb *redis.Client, quotes quote.Lookuper, sessionCfg middleware.SessionConfig) {
	authHandlers := &auth.Handlers{
		Service: &auth.Service{DB: db},
		Rdb:     rdb,
		Config:  sessionCfg,
	}
	app.Get("/login", authHandlers.LoginForm)
	app.Post("/login", authHandlers.Login)
	app.Get("/register", authHandlers.RegisterForm)
	app.Post("/register", authHandlers.Register)
	app.Get("/logout", authHandlers.Logout)

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	portfolioHandlers := &portfolio.Handlers{
		Service: &portfolio.Service{DB: db},
		Quotes:  quotes,
	}
	quoteHandlers := &quote.Handlers{Quotes: quotes}
	historyHandlers := &history.Handlers{Service: &history.Service{DB: db}}

	protected := app.Group("/", middleware.RequireAuth())
	protected.Get("/", portfolioHandlers.Index)
	protected.Get("/buy", portfolioHandlers.BuyForm)
	protected.Post("/buy", portfolioHandlers.Buy)
	protected.Get("/sell", portfolioHandlers.SellForm)
	protected.Post("/sell", portfolioHandlers.Sell)
	protected.Get("/quote", quoteHandlers.Form)
	protected.Post("/quote", quoteHandlers.Quote)
	protected.Get("/history", historyHandlers.List)
}
