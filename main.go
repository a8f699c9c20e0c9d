package main

import (
	"log"
	"os"
	"time"

	"agency-backoffice-server/handlers/applications"
	"agency-backoffice-server/handlers/auth"
	"agency-backoffice-server/handlers/colleges"
	"agency-backoffice-server/handlers/commissions"
	"agency-backoffice-server/handlers/counsellors"
	"agency-backoffice-server/handlers/notifications"
	"agency-backoffice-server/handlers/payments"
	"agency-backoffice-server/handlers/transactions"
	"agency-backoffice-server/migrations"
	"agency-backoffice-server/seed"
	"agency-backoffice-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	if len(utils.JwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	r := gin.Default()

	origin := os.Getenv("DASHBOARD_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigrateAccounts()
	migrations.MigrateCatalogue()
	migrations.MigrateWorkflow()
	migrations.MigrateNotifications()

	// Seed Initial Data
	if err := seed.SeedRootAgent(); err != nil {
		log.Fatalf("Failed to seed root agent: %v", err)
	}
	if err := seed.SeedCatalogue(); err != nil {
		log.Fatalf("Failed to seed catalogue: %v", err)
	}

	r.POST("/register", auth.RegisterAgent)
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.AuthMiddleware(), auth.Logout)
	r.POST("/refresh-token", auth.RefreshToken)
	r.POST("/request-otp", auth.RequestOTP)
	r.POST("/verify-otp-reset", auth.VerifyOTPReset)
	r.POST("/reset-password", auth.ResetPassword)
	r.POST("/stripe/webhook", payments.HandleStripeWebhook)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/sub-agents", auth.CreateSubAgent)
		protected.GET("/sub-agents", auth.ListSubAgents)

		protected.POST("/counsellors", counsellors.CreateCounsellor)
		protected.GET("/counsellors", counsellors.ListCounsellors)
		protected.DELETE("/counsellors/:id", counsellors.DeleteCounsellor)

		protected.GET("/colleges", colleges.ListColleges)
		protected.GET("/colleges/:id", colleges.GetCollege)
		protected.POST("/colleges", colleges.CreateCollege)
		protected.GET("/courses", colleges.ListCourses)
		protected.POST("/courses", colleges.CreateCourse)

		protected.POST("/applications", applications.CreateApplication)
		protected.GET("/applications", applications.ListApplications)
		protected.GET("/applications/:id", applications.GetApplication)
		protected.PUT("/applications/:id/status", applications.UpdateApplicationStatus)
		protected.PUT("/applications/:id/assign", applications.AssignSubAgent)
		protected.PUT("/applications/:id/documents", applications.UpdateDocuments)

		protected.GET("/transactions", transactions.ListTransactions)
		protected.GET("/transactions/:id", transactions.GetTransaction)
		protected.PUT("/transactions/:id/status", transactions.UpdateTransactionStatus)

		protected.GET("/commissions", commissions.ListCommissions)
		protected.PUT("/commissions/:id/status", commissions.UpdateCommissionStatus)

		protected.POST("/payments/intent", payments.CreatePaymentIntent)

		notifications.RegisterNotificationsRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
