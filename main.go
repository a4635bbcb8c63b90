package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gighaat/config"
	"gighaat/cron"
	"gighaat/database"
	jobRepoPkg "gighaat/database/repository/job"
	ledgerRepoPkg "gighaat/database/repository/ledger"
	orderRepoPkg "gighaat/database/repository/paymentorder"
	userRepoPkg "gighaat/database/repository/user"
	verificationRepoPkg "gighaat/database/repository/verification"
	walletRepoPkg "gighaat/database/repository/wallet"
	withdrawalRepoPkg "gighaat/database/repository/withdrawal"
	"gighaat/handlers"
	"gighaat/middleware"
	"gighaat/routes"
	"gighaat/services/job"
	"gighaat/services/offer"
	"gighaat/services/payment"
	"gighaat/services/user"
	"gighaat/services/verification"
	"gighaat/services/wallet"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitCooldownCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()
	ledgerRepo := ledgerRepoPkg.NewMongoLedgerRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	withdrawalRepo := withdrawalRepoPkg.NewMongoWithdrawalRepo()
	verificationRepo := verificationRepoPkg.NewMongoVerificationRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	jobService := &job.DefaultJobService{
		Repo:  jobRepo,
		Users: userRepo,
		Cache: job.NewRedisListingCache(utils.GetCacheClient()),
	}
	offerService := &offer.DefaultOfferService{
		Jobs:      jobRepo,
		Users:     userRepo,
		Cooldowns: offer.NewRedisCooldownStore(utils.GetCooldownClient()),
	}
	paymentService := &payment.DefaultPaymentService{
		Orders:  orderRepo,
		Jobs:    jobRepo,
		Ledger:  ledgerRepo,
		Wallets: walletRepo,
		Gateway: &payment.StripeGateway{},
	}
	walletService := &wallet.DefaultWalletService{
		Wallets:     walletRepo,
		Withdrawals: withdrawalRepo,
	}
	verificationService := &verification.DefaultVerificationService{
		Repo:  verificationRepo,
		Users: userRepo,
	}

	// Background reconciliation of stale UPI orders.
	cron.InitReconcileWorker(paymentService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetCooldownClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Auth:         handlers.NewAuthHandler(userService),
		Job:          handlers.NewJobHandler(jobService),
		Freelancer:   handlers.NewFreelancerHandler(jobService, offerService),
		Payment:      handlers.NewPaymentHandler(paymentService),
		Wallet:       handlers.NewWalletHandler(walletService),
		Verification: handlers.NewVerificationHandler(verificationService),
		Admin:        handlers.NewAdminHandler(walletService, verificationService),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
