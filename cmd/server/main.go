package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"diveops-console/internal/api"
	"diveops-console/internal/config"
	"diveops-console/internal/database"
	"diveops-console/internal/leadimport"
	"diveops-console/internal/webhook"
	"diveops-console/internal/whatsapp"
	"diveops-console/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	database.InitDB(cfg)
	database.SeedReplyTemplates(database.DB, cfg.TemplateLanguage)

	hub := ws.NewHub()
	go hub.Run()

	whatsappClient := whatsapp.NewClient(cfg, database.DB)
	contactStore := database.NewContactStore(database.DB)
	importLogStore := database.NewImportLogStore(database.DB)

	settings := database.LoadImportSettings(database.DB, defaultSettings(cfg))
	pipeline, err := leadimport.NewPipeline(leadimport.PipelineDeps{
		Directory:     contactStore,
		Store:         contactStore,
		Responder:     whatsappClient,
		Recorder:      importLogStore,
		Notifier:      hub,
		Settings:      settings,
		Location:      cfg.Location(),
		LookupTimeout: cfg.LookupTimeout,
		ImportTimeout: cfg.ImportTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to build import pipeline: %v", err)
	}

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	webhookHandler := webhook.NewHandler(cfg, pipeline, database.DB)
	dashboardHandler := api.NewDashboardHandler(whatsappClient, database.DB)
	contactHandler := api.NewContactHandler(database.DB)
	importHandler := api.NewImportHandler(pipeline, importLogStore, database.DB)
	templateHandler := api.NewTemplateHandler(database.DB)
	chatLinkHandler := api.NewChatLinkHandler()

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleMessage)

	// Dashboard live feed
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/messages", dashboardHandler.GetMessages)
		apiGroup.POST("/send", dashboardHandler.SendMessage)

		// CRM Routes
		apiGroup.GET("/contacts", contactHandler.GetContacts)
		apiGroup.POST("/contacts", contactHandler.CreateContact)
		apiGroup.PUT("/contacts/:waId", contactHandler.UpdateContact)
		apiGroup.DELETE("/contacts/:waId", contactHandler.DeleteContact)
		apiGroup.GET("/contacts/export", contactHandler.ExportContacts)

		// Lead Import Routes
		importGroup := apiGroup.Group("/import")
		{
			importGroup.GET("/settings", importHandler.GetSettings)
			importGroup.PUT("/settings", importHandler.UpdateSettings)
			importGroup.GET("/stats", importHandler.GetStats)
			importGroup.POST("/stats/reset", importHandler.ResetStats)
			importGroup.GET("/recent", importHandler.GetRecentImports)
			importGroup.POST("/preview", importHandler.PreviewExtraction)
		}

		// Reply Template Routes
		apiGroup.GET("/templates", templateHandler.GetTemplates)
		apiGroup.PUT("/templates/:id", templateHandler.UpdateTemplate)

		// Click-to-Chat Routes
		apiGroup.POST("/chatlinks", chatLinkHandler.GenerateChatLink)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	// Let in-flight imports reach a terminal decision before exit.
	if err := pipeline.Drain(shutdownCtx); err != nil {
		log.Printf("Pipeline drain interrupted: %v", err)
	}
	log.Println("Shutdown complete")
}

func defaultSettings(cfg *config.Config) leadimport.Settings {
	return leadimport.Settings{
		AutoImportEnabled:     cfg.AutoImportEnabled,
		RequireEmail:          cfg.RequireEmail,
		RequirePhone:          cfg.RequirePhone,
		DuplicateCheckEnabled: cfg.DuplicateCheckEnabled,
		ConfidenceThreshold:   cfg.ConfidenceThreshold,
		BusinessHoursOnly:     cfg.BusinessHoursOnly,
		AutoReplyEnabled:      cfg.AutoReplyEnabled,
		NotifyOnImport:        cfg.NotifyOnImport,
		BusinessHoursStart:    cfg.BusinessHoursStart,
		BusinessHoursEnd:      cfg.BusinessHoursEnd,
	}
}
