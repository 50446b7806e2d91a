package main

import (
	"fmt"
	"gestor-turnos/config"
	"gestor-turnos/database"
	"gestor-turnos/logger"
	"gestor-turnos/middleware"
	"gestor-turnos/mq"
	"gestor-turnos/routes"
	"gestor-turnos/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogDir); err != nil {
		fmt.Println("Error initializing logger:", err)
		os.Exit(1)
	}
	loc, _ := cfg.Location()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		os.Exit(1)
	}

	var events mq.EventPublisher = mq.Nop{}
	if cfg.RabbitURL != "" {
		publisher, err := mq.NewPublisher(cfg.RabbitURL, cfg.JornadaExchange)
		if err != nil {
			logger.Warning("RabbitMQ unavailable, events disabled: " + err.Error())
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       4 * 1024 * 1024,
		ErrorHandler:    utils.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		AllowCredentials: cfg.FrontendURL != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
	}))
	app.Use(middleware.RequestLog(asyncLogger))
	app.Use(middleware.StoreTimeout(cfg.DBTimeout))

	routes.SetupRoutes(app, middleware.NewAuth(cfg.JWTSecret), routes.NewControllers(db, loc, events))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	addr := cfg.AppHost + ":" + cfg.AppPort
	logger.Success("Server is running on " + addr)
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}

	asyncLogger.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
