package server

import (
	"time"

	"github.com/apex/log"
	"github.com/garlicgarrison/chess-variant-rules/ruleset"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Config struct {
	AllowOrigins string
}

// New builds the HTTP app serving the rulesets held by registry.
func New(registry *ruleset.Registry, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}
	app.Use(requestLogger)

	rc := NewRulesetController(registry, NewGameStore())

	app.Post("/moveids/decode", rc.DecodeMoveID)

	rulesets := app.Group("/rulesets")
	rulesets.Get("/", rc.ListRulesets)
	rulesets.Get("/:id", rc.GetRuleset)
	rulesets.Get("/:id/pieces", rc.ListPieces)
	rulesets.Get("/:id/pieces/:symbol", rc.GetPiece)
	rulesets.Post("/:id/games", rc.CreateGame)

	app.Get("/games/:gameId", rc.GetGame)

	return app
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	log.WithFields(log.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   c.Response().StatusCode(),
		"duration": time.Since(start),
	}).Debug("request")
	return err
}
