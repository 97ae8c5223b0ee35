// @title           CardMock Aiproval API
// @version         1.0.0
// @description     Backend API for designing, reviewing, and approving visual mockups (cards, email templates) through organization-scoped workflows. Handles workflow definitions, stage reviewer assignment, approval progression, public share links, and AI document summaries.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"cardmock-backend/docs"
	"cardmock-backend/internal/config"
	"cardmock-backend/internal/database"
	"cardmock-backend/internal/handlers"
	"cardmock-backend/internal/middleware"
	"cardmock-backend/internal/notify"
	"cardmock-backend/internal/services"
	"cardmock-backend/internal/summarize"
	"cardmock-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		handlers.SetVerbose(false)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required; set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	summarizeClient := summarize.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !summarizeClient.Enabled() {
		log.Println("OPENAI_API_KEY not set; document summarization will be unavailable")
	}

	notifier := notify.NewSlackNotifier(cfg.SlackWebhookURL)
	if !notifier.Enabled() {
		log.Println("SLACK_WEBHOOK_URL not set; Slack notifications disabled")
	}

	// Services
	approvalService := services.NewApprovalService(dbClient, realtimeClient, notifier)
	reviewService := services.NewReviewService(dbClient)
	shareService := services.NewShareService(dbClient)

	// Handlers
	workflowsHandler := handlers.NewWorkflowsHandler(dbClient)
	clientsHandler := handlers.NewClientsHandler(dbClient)
	projectsHandler := handlers.NewProjectsHandler(dbClient)
	reviewersHandler := handlers.NewReviewersHandler(dbClient)
	mockupsHandler := handlers.NewMockupsHandler(dbClient, storageClient)
	approvalsHandler := handlers.NewApprovalsHandler(approvalService)
	reviewsHandler := handlers.NewReviewsHandler(reviewService)
	shareAdminHandler := handlers.NewShareAdminHandler(dbClient, shareService)
	publicShareHandler := handlers.NewPublicShareHandler(shareService)
	summariesHandler := handlers.NewSummariesHandler(summarizeClient)
	eventsHandler := handlers.NewEventsHandler(dbClient)

	// Setup router
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public share-link routes (bearer share token, no auth middleware)
	public := router.Group("/public/share/:token")
	public.GET("", publicShareHandler.Access)
	public.POST("/verify", publicShareHandler.Verify)
	public.POST("/identify", publicShareHandler.Identify)
	public.POST("/comments", publicShareHandler.Comment)
	public.POST("/approve", publicShareHandler.Approve)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	admin := middleware.RequireRole(middleware.RoleAdmin)

	// Workflow routes
	api.POST("/workflows", admin, workflowsHandler.CreateWorkflow)
	api.GET("/workflows", workflowsHandler.ListWorkflows)
	api.GET("/workflows/:workflow_id", workflowsHandler.GetWorkflow)
	api.POST("/workflows/:workflow_id/archive", admin, workflowsHandler.ArchiveWorkflow)
	api.POST("/workflows/:workflow_id/default", admin, workflowsHandler.SetDefaultWorkflow)

	// Client routes
	api.POST("/clients", admin, clientsHandler.CreateClient)
	api.GET("/clients", clientsHandler.ListClients)
	api.GET("/clients/:client_id", clientsHandler.GetClient)
	api.PUT("/clients/:client_id", admin, clientsHandler.UpdateClient)
	api.DELETE("/clients/:client_id", admin, clientsHandler.DeleteClient)

	// Project routes
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	// Stage reviewer routes
	api.POST("/projects/:project_id/reviewers", admin, reviewersHandler.AddReviewer)
	api.GET("/projects/:project_id/reviewers", reviewersHandler.ListReviewers)
	api.DELETE("/projects/:project_id/reviewers/:reviewer_id", admin, reviewersHandler.RemoveReviewer)

	// Mockup routes
	api.POST("/mockups", mockupsHandler.CreateMockup)
	api.GET("/mockups", mockupsHandler.ListMockups)
	api.GET("/mockups/:mockup_id", mockupsHandler.GetMockup)
	api.PUT("/mockups/:mockup_id", mockupsHandler.UpdateMockup)
	api.DELETE("/mockups/:mockup_id", mockupsHandler.DeleteMockup)
	api.POST("/mockups/:mockup_id/move", mockupsHandler.MoveMockup)
	api.POST("/mockups/:mockup_id/duplicate", mockupsHandler.DuplicateMockup)
	api.POST("/mockups/:mockup_id/image", mockupsHandler.UploadImage)

	// Approval workflow routes
	api.GET("/mockups/:mockup_id/progress", approvalsHandler.GetProgress)
	api.POST("/mockups/:mockup_id/submit", approvalsHandler.SubmitForReview)
	api.POST("/mockups/:mockup_id/decisions", approvalsHandler.RecordDecision)
	api.POST("/mockups/:mockup_id/final-approval", approvalsHandler.FinalApprove)

	// Reviewer dashboard
	api.GET("/reviews/pending", reviewsHandler.ListPending)

	// Share link administration
	api.POST("/mockups/:mockup_id/share-links", shareAdminHandler.CreateShareLink)
	api.GET("/mockups/:mockup_id/share-links", shareAdminHandler.ListShareLinks)
	api.DELETE("/share-links/:link_id", shareAdminHandler.RevokeShareLink)

	// AI summaries
	api.POST("/summaries", summariesHandler.Summarize)

	// Integration audit
	api.GET("/integrations/events", eventsHandler.ListIntegrationEvents)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
