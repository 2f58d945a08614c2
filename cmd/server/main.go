package main

import (
	"context"
	"fmt"
	"log"

	"gstbill/internal/auth/google"
	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/port"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.Open(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// The server starts serving before the database is reachable; requests
	// hitting /api are gated on the readiness flag until the probe succeeds.
	health := postgres.NewHealth(db, cfg.DB.ConnectTimeout)
	health.Start(context.Background(), cfg.DB.PingInterval)

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	// Google sign-in stays disabled until a client ID is configured.
	var verifier port.SocialTokenVerifier
	if cfg.Google.ClientID != "" {
		verifier = google.NewVerifier(cfg.Google.ClientID)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	socialSvc := service.NewSocialAuthService(verifier, userRepo, authSvc)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, socialSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(health)

	// Setup router
	r := router.Setup(router.Dependencies{
		Config:         cfg,
		AuthService:    authSvc,
		AuthHandler:    authH,
		InvoiceHandler: invoiceH,
		HealthHandler:  healthH,
		DBChecker:      health,
	})

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
