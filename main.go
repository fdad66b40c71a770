package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/cache"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/config"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/history"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/importer"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/notify"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/remote"
	academicroutes "github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/routes/academic"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/routes/imports"
)

// customErrorHandler keeps API errors in the standard JSON envelope
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	cfg := config.Load()

	store, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		log.Fatal("Failed to open local cache:", err)
	}

	client := remote.NewClient(cfg.APIBaseURL, cfg.APIToken)
	historyStore := history.NewStore(client, store)
	sink := notify.NewSink()
	session := importer.NewSession(client, historyStore, sink, store)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    32 * 1024 * 1024, // import files stay well under this
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	imports.RegisterRoutes(app, session, historyStore, sink)
	academicroutes.RegisterRoutes(app, client)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Printf("Import console listening on %s", cfg.ListenAddr)
	log.Fatal(app.Listen(cfg.ListenAddr))
}
