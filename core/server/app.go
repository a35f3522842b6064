package server

import (
	"errors"

	"order-menu/core/apperr"
	"order-menu/core/middleware/rayid"
	"order-menu/core/middleware/requestlog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

// NewApp creates the Fiber application with the global middleware chain:
// ray id, request logging and CORS. Routes are mounted by the caller.
func NewApp(cfg Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit(),
		ErrorHandler:          ErrorHandler,
	})

	app.Use(rayid.New())
	app.Use(requestlog.New(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	return app
}

// ErrorHandler renders errors as {"error": message}. Framework errors keep
// their status; application errors are mapped by apperr.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return apperr.Respond(c, err)
}
