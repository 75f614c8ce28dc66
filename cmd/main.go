package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	authapp "github.com/souqhub/marketplace/application/auth"
	chatapp "github.com/souqhub/marketplace/application/chat"
	currencyapp "github.com/souqhub/marketplace/application/currency"
	geoapp "github.com/souqhub/marketplace/application/geo"
	listingapp "github.com/souqhub/marketplace/application/listing"
	otpapp "github.com/souqhub/marketplace/application/otp"
	socialapp "github.com/souqhub/marketplace/application/social"
	"github.com/souqhub/marketplace/cmd/config"
	redisclient "github.com/souqhub/marketplace/cmd/redis"
	_ "github.com/souqhub/marketplace/docs"
	geoRepo "github.com/souqhub/marketplace/repository/geo"
	listingRepo "github.com/souqhub/marketplace/repository/listing"
	otpRepo "github.com/souqhub/marketplace/repository/otp"
	redisRepo "github.com/souqhub/marketplace/repository/redis"
	socialRepo "github.com/souqhub/marketplace/repository/social"
	storageRepo "github.com/souqhub/marketplace/repository/storage"
	txRepo "github.com/souqhub/marketplace/repository/tx"
	userRepo "github.com/souqhub/marketplace/repository/user"
	"github.com/souqhub/marketplace/thirdparty/fx"
	"github.com/souqhub/marketplace/thirdparty/llm"
	"github.com/souqhub/marketplace/thirdparty/rabbitmq"
	"github.com/souqhub/marketplace/thirdparty/sms"
	"github.com/souqhub/marketplace/transport"
	"github.com/souqhub/marketplace/utils/logger"
	"go.uber.org/zap"
)

// @title SouqHub Marketplace API
// @version 1.0
// @description Bilingual classified-ads marketplace API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	OTPRepo := otpRepo.NewOTPRepository(db)
	ListingRepo := listingRepo.NewListingRepository(db)
	GeoRepo := geoRepo.NewGeoRepository(db)
	SocialRepo := socialRepo.NewSocialRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository()

	StorageRepo, err := storageRepo.NewStorageRepository(cfg)
	if err != nil {
		logger.Fatal("err init storage", zap.Error(err))
	}

	// Third-party clients
	smsClient := sms.NewClient(cfg)
	fxClient := fx.NewClient(cfg)
	llmClient := llm.NewClient(cfg)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer publisher.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, smsClient)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if err := consumer.Start(consumerCtx); err != nil {
		logger.Fatal("err start rabbitmq consumer", zap.Error(err))
	}

	// Initialize application layers
	OTPApp := otpapp.NewOTPApp(cfg, OTPRepo, UserRepo, RedisRepo, smsClient)
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, RedisRepo, OTPApp)
	ListingApp := listingapp.NewListingApp(TxRepo, ListingRepo, StorageRepo)
	GeoApp := geoapp.NewGeoApp(GeoRepo)
	SocialApp := socialapp.NewSocialApp(SocialRepo, UserRepo, publisher)
	CurrencyApp := currencyapp.NewCurrencyApp(cfg, fxClient)
	ChatApp := chatapp.NewChatApp(llmClient)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		AuthApp:     AuthApp,
		ListingApp:  ListingApp,
		GeoApp:      GeoApp,
		SocialApp:   SocialApp,
		CurrencyApp: CurrencyApp,
		ChatApp:     ChatApp,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
