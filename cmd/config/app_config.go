package config

import (
	"Product-Scanner/internal/api/handlers"
	"Product-Scanner/internal/api/routes"
	"Product-Scanner/internal/middleware"
	"Product-Scanner/internal/utils"
	"Product-Scanner/internal/utils/mailing"
	"Product-Scanner/internal/utils/storage"
	"Product-Scanner/pkg/camera"
	"Product-Scanner/pkg/excel"
	"Product-Scanner/pkg/history"
	"Product-Scanner/pkg/jwt"
	"Product-Scanner/pkg/product"
	"Product-Scanner/pkg/scan"
	"Product-Scanner/pkg/scanner"
	"Product-Scanner/pkg/user"
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

const framesPath = "/api/v1/scan/frames"

// NewApp wires the HTTP server. The returned cleanup disposes every scan
// session and drains the history queue; call it after the server stopped.
func NewApp(db *gorm.DB) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	scanConfig := utils.GetScanConfig()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == framesPath
		},
	}))

	// frames arrive at the camera sampling rate and are not limited
	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == framesPath
		},
	}))

	// utils
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		if !errors.Is(err, storage.ErrStorageNotConfigured) {
			log.Warnw("spreadsheet archiving disabled", "error", err)
		}
	}
	clock := clockwork.NewRealClock()
	hub := camera.NewHub(scanConfig.MaxFrameSide)

	// Repository
	userRepository := user.NewUserRepository(db)
	productRepository := product.NewProductRepository(db)
	historyRepository := history.NewHistoryRepository(db)
	scannerRepository := scanner.NewScannerRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService)
	productService := product.NewProductService(productRepository)
	historyService := history.NewHistoryService(historyRepository)
	scannerService := scanner.NewScannerService(scannerRepository)
	recorder := history.NewRecorder(historyRepository, scanConfig.HistoryWorkers, scanConfig.HistoryQueue, nil)
	sessions := scan.NewManager(scan.Options{
		Products:     productService,
		History:      recorder,
		Scanners:     scannerService,
		Clock:        clock,
		SelectCamera: scan.CameraPolicy(scanConfig.CameraSelect),
		Capture: scan.CaptureConfig{
			FPS:          scanConfig.FPS,
			DetectionBox: scanConfig.DetectionBox,
			AspectRatio:  1.0,
		},
		DebounceDelay: scanConfig.DebounceDelay,
		ResetDelay:    scanConfig.ResetDelay,
	}, func(userID string) scan.DecodeEngine {
		return camera.NewEngine(hub, userID, clock)
	})
	sessions.StartJanitor(scanConfig.SessionTTL, hub.Forget)
	excelService := excel.NewExcelService(productService, recorder, s3, mailing.SendMail)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	productHandler := handlers.NewProductHandler(productService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	scannerHandler := handlers.NewScannerHandler(scannerService, validator)
	scanHandler := handlers.NewScanHandler(sessions, hub, validator)
	excelHandler := handlers.NewExcelHandler(excelService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ProductHandler: productHandler,
		HistoryHandler: historyHandler,
		ScannerHandler: scannerHandler,
		ScanHandler:    scanHandler,
		ExcelHandler:   excelHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		sessions.Close()
		recorder.Close()
		file.Close()
	}
	return app, cleanup, nil
}
