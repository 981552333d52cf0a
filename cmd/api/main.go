package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"commerce/internal/config"
	"commerce/internal/domain/model"
	"commerce/internal/event"
	"commerce/internal/handler"
	"commerce/internal/infra/db"
	infraRepo "commerce/internal/infra/repository"
	"commerce/internal/server"
	"commerce/internal/usecase"
)

func main() {
	// .env is optional outside dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.ShippingAddress{},
	); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// repositories (GORM)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	addressRepo := infraRepo.NewShippingAddressGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// payment settled events
	var publisher event.Publisher = event.NoopPublisher{}
	if cfg.KafkaBroker != "" {
		kp, err := event.NewKafkaPublisher(cfg.KafkaBroker, logger)
		if err != nil {
			logger.Fatal("failed to initialize kafka publisher", zap.Error(err))
		}
		defer kp.Close()
		publisher = kp
	}

	// usecases
	userUC := usecase.NewUserUsecase(userRepo, logger)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, logger)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, inventoryRepo, logger)
	orderUC := usecase.NewOrderUsecase(txManager, logger)
	orderItemUC := usecase.NewOrderItemUsecase(txManager, logger)
	paymentUC := usecase.NewPaymentUsecase(txManager, publisher, logger)
	addressUC := usecase.NewShippingAddressUsecase(addressRepo, userRepo, logger)

	e := server.New(logger, server.Handlers{
		Users:      handler.NewUserHandler(userUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Products:   handler.NewProductHandler(productUC),
		Orders:     handler.NewOrderHandler(orderUC),
		OrderItems: handler.NewOrderItemHandler(orderItemUC),
		Payments:   handler.NewPaymentHandler(paymentUC),
		Addresses:  handler.NewShippingAddressHandler(addressUC),
	})

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
