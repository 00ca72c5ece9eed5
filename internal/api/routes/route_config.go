package routes

import (
	"Product-Scanner/internal/api/handlers"
	"Product-Scanner/internal/middleware"
	"Product-Scanner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ProductHandler handlers.ProductHandler
	HistoryHandler handlers.HistoryHandler
	ScannerHandler handlers.ScannerHandler
	ScanHandler    handlers.ScanHandler
	ExcelHandler   handlers.ExcelHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Products()
	c.History()
	c.Scanners()
	c.Scan()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))
	products.Get("/:serial", c.ProductHandler.GetProduct)
}

func (c *Config) History() {
	history := c.App.Group("/api/v1/history", c.Middleware.AuthMiddleware(c.JWTService))
	history.Get("", c.HistoryHandler.GetScanHistory)
}

func (c *Config) Scanners() {
	scanners := c.App.Group("/api/v1/scanners", c.Middleware.AuthMiddleware(c.JWTService))
	scanners.Get("", c.ScannerHandler.GetScanners)
	scanners.Get("/search", c.ScannerHandler.SearchScanners)
	scanners.Post("", c.ScannerHandler.UpsertScanner)
	scanners.Delete("/:id", c.ScannerHandler.DeleteScanner)
}

func (c *Config) Scan() {
	scan := c.App.Group("/api/v1/scan", c.Middleware.AuthMiddleware(c.JWTService))

	// camera lifecycle
	scan.Post("/cameras", c.ScanHandler.AnnounceCameras)
	scan.Post("/camera/start", c.ScanHandler.StartCamera)
	scan.Post("/camera/stop", c.ScanHandler.StopCamera)
	scan.Post("/frames", c.ScanHandler.PushFrame)

	// session
	scan.Post("/manual", c.ScanHandler.ManualScan)
	scan.Get("/session", c.ScanHandler.GetSession)
	scan.Delete("/session", c.ScanHandler.CloseSession)

	scan.Post("/excel", c.ExcelHandler.VerifySpreadsheet)
}
