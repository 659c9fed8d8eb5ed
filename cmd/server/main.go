package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipstack.backend/internal/config"
	"shipstack.backend/internal/infrastructure/carrier"
	"shipstack.backend/internal/infrastructure/gateway"
	"shipstack.backend/internal/infrastructure/jobs"
	"shipstack.backend/internal/infrastructure/repositories"
	"shipstack.backend/internal/interfaces/http/handlers"
	"shipstack.backend/internal/interfaces/http/middleware"
	"shipstack.backend/internal/usecases"
	"shipstack.backend/pkg/jwt"
	"shipstack.backend/pkg/logger"
	"shipstack.backend/pkg/mailer"
	"shipstack.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	mailSender := mailer.New(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	carrierClient := carrier.NewClient(cfg.Carrier.BaseURL, cfg.Carrier.Token, cfg.Carrier.PickupName, cfg.Carrier.Timeout)
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.CallbackURL, cfg.Gateway.Timeout)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	shipmentRepo := repositories.NewShipmentRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	intentRepo := repositories.NewIntentRepository(db)
	warehouseRepo := repositories.NewWarehouseRepository(db)
	productRepo := repositories.NewProductRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpRepo, walletRepo, uow, jwtService, mailSender)
	userUsecase := usecases.NewUserUsecase(userRepo)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, ledgerRepo)
	rechargeUsecase := usecases.NewRechargeUsecase(userRepo, walletRepo, ledgerRepo, gatewayClient)
	quoteUsecase := usecases.NewQuoteUsecase(userRepo, carrierClient)
	orderUsecase := usecases.NewOrderUsecase(userRepo, walletRepo, ledgerRepo, orderRepo, shipmentRepo, customerRepo, intentRepo, warehouseRepo, productRepo, carrierClient, uow)
	trackingUsecase := usecases.NewTrackingUsecase(orderRepo, shipmentRepo, customerRepo, carrierClient)
	warehouseUsecase := usecases.NewWarehouseUsecase(warehouseRepo, carrierClient)
	productUsecase := usecases.NewProductUsecase(productRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase, rechargeUsecase)
	shippingHandler := handlers.NewShippingHandler(quoteUsecase, orderUsecase, trackingUsecase)
	pincodeHandler := handlers.NewPincodeHandler(carrierClient)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseUsecase)
	productHandler := handlers.NewProductHandler(productUsecase)
	adminHandler := handlers.NewAdminHandler(userUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rechargeSweep := jobs.NewRechargeExpiryJob(ledgerRepo, cfg.Jobs.RechargeSweepInterval, cfg.Jobs.RechargeStaleAfter)
	go rechargeSweep.Start(ctx)

	intentReconciler := jobs.NewIntentReconcilerJob(intentRepo, cfg.Jobs.IntentReconcileEvery, cfg.Jobs.IntentStaleAfter)
	go intentReconciler.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		walletHandler:    walletHandler,
		shippingHandler:  shippingHandler,
		pincodeHandler:   pincodeHandler,
		warehouseHandler: warehouseHandler,
		productHandler:   productHandler,
		adminHandler:     adminHandler,
		authMiddleware:   authMiddleware,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		rechargeSweep.Stop()
		intentReconciler.Stop()
		cancel()
	}()

	log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
	return runServer(r, cfg.Server.Port)
}
