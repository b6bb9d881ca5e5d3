package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Learnspoint11/moryastationery/internal/config"
	"github.com/Learnspoint11/moryastationery/internal/database"
	"github.com/Learnspoint11/moryastationery/internal/ratelimit"
	"github.com/Learnspoint11/moryastationery/internal/repository"
	"github.com/Learnspoint11/moryastationery/internal/routes"
	"github.com/Learnspoint11/moryastationery/internal/services"
	"github.com/Learnspoint11/moryastationery/internal/session"
	"github.com/Learnspoint11/moryastationery/internal/sms"
)

func main() {
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.AppEnv == "development" {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	sugar := zl.Sugar()

	db, client, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase, sugar)
	if err != nil {
		sugar.Fatalf("mongo connect failed: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	var limiter services.OTPLimiter
	if cfg.RedisAddr != "" {
		rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, sugar)
		if err != nil {
			sugar.Fatalf("redis connect failed: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.OTPLimitPerHour, time.Hour)
	} else {
		sugar.Warn("REDIS_ADDR not set, OTP rate limiting disabled")
	}

	users := repository.NewMongoUserRepo(db, "users")
	orders := repository.NewMongoOrderRepo(db, "orders")
	products := repository.NewMongoProductRepo(db, "products")

	sender := sms.NewFast2SMS(cfg.SMSAPIKey, sugar)
	sessions := session.NewManager(cfg.SessionTTL)
	authSvc := services.NewAuthService(users, sender, limiter, cfg.OTPTTL, sugar)
	orderSvc := services.NewOrderService(orders, users, sugar)

	app := fiber.New(fiber.Config{
		AppName:      "Moryastationery Backend",
		ErrorHandler: jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	routes.Register(app, sessions, authSvc, orderSvc, users, products)

	app.Static("/", "./public")

	sugar.Infof("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		sugar.Fatalf("fiber.Listen error: %v", err)
	}
}

// jsonErrorHandler keeps every failure in the {"message": ...} shape the
// API promises.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
