package routes

import (
	"net/http"
	"time"

	"gighaat/handlers"
	"gighaat/middleware"
	"gighaat/models"
	"gighaat/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Auth.ProfileHandler)
		api.PUT("/me", hb.Auth.UpdateProfileHandler)
	}
}

// RegisterClientRoutes registers the client side of the job lifecycle along
// with the payment entry point for a finished job.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/client")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleClient))
	{
		api.POST("/post-job", hb.Job.PostJobHandler)
		api.GET("/my-jobs", hb.Job.MyJobsHandler)
		api.GET("/job-history", hb.Job.JobHistoryHandler)
		api.GET("/job/:jobId", hb.Job.GetJobHandler)
		api.PUT("/job/:jobId", hb.Job.UpdateJobHandler)
		api.DELETE("/job/:jobId", hb.Job.DeleteJobHandler)
		api.POST("/job/:jobId/complete", hb.Job.CompleteJobHandler)
		api.POST("/job/:jobId/cancel", hb.Job.CancelJobHandler)
		api.POST("/accept-offer/:jobId", hb.Job.AcceptOfferHandler)
		api.POST("/reject-offer/:jobId", hb.Job.RejectOfferHandler)
		api.POST("/pay/:jobId", hb.Payment.PayJobHandler)
	}
}

// RegisterPaymentRoutes registers the UPI order flow: create, verify by
// polling, and read back the latest order for a job.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payment")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleClient))
	{
		api.POST("/upi/:jobId", hb.Payment.CreateUPIPaymentHandler)
		api.POST("/verify", hb.Payment.VerifyUPIPaymentHandler)
		api.GET("/status/:jobId", hb.Payment.PaymentStatusHandler)
	}
}

// RegisterFreelancerRoutes registers the freelancer side: browsing and taking
// jobs, wallet, commissions, and identity verification.
func RegisterFreelancerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	jobs := r.Group("/api/jobs")
	jobs.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleFreelancer))
	jobs.GET("/available", hb.Freelancer.AvailableJobsHandler)

	api := r.Group("/api/freelancer")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleFreelancer))
	{
		api.GET("/assigned-jobs", hb.Freelancer.AssignedJobsHandler)
		api.POST("/pickup-job/:jobId", hb.Freelancer.PickupJobHandler)
		api.POST("/make-offer/:jobId", hb.Freelancer.MakeOfferHandler)
		api.GET("/offer-cooldown/:jobId", hb.Freelancer.CheckCooldownHandler)
		api.POST("/mark-complete/:jobId", hb.Freelancer.MarkWorkDoneHandler)
		api.POST("/confirm-completion/:jobId", hb.Freelancer.ConfirmCompletionHandler)

		api.GET("/wallet", hb.Wallet.GetWalletHandler)
		api.POST("/request-withdrawal", hb.Wallet.RequestWithdrawalHandler)
		api.GET("/withdrawal-history", hb.Wallet.WithdrawalHistoryHandler)

		api.GET("/commission-dues", hb.Payment.CommissionDuesHandler)
		api.GET("/commission-history", hb.Payment.CommissionHistoryHandler)
		api.POST("/pay-commission/:entryId", hb.Payment.PayCommissionHandler)

		api.POST("/verification", hb.Verification.SubmitVerificationHandler)
		api.GET("/verification", hb.Verification.VerificationStatusHandler)
	}
}

// RegisterStorageRoutes registers document and photo uploads for any
// authenticated user.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	api.POST("/upload", hb.Storage.UploadFileHandler)
}

// RegisterAdminRoutes registers the review queues.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/withdrawal-requests", hb.Admin.ListWithdrawalsHandler)
		api.POST("/approve-withdrawal/:requestId", hb.Admin.ApproveWithdrawalHandler)
		api.POST("/reject-withdrawal/:requestId", hb.Admin.RejectWithdrawalHandler)

		api.GET("/freelancer-verifications", hb.Admin.ListVerificationsHandler)
		api.POST("/approve-freelancer/:verificationId", hb.Admin.ApproveVerificationHandler)
		api.POST("/reject-freelancer/:verificationId", hb.Admin.RejectVerificationHandler)

		api.GET("/search-users", hb.Auth.SearchFreelancersHandler)
		api.GET("/documents/url", hb.Storage.DocumentURLHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint reporting dependency
// status from the background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterFreelancerRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
