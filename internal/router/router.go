package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// Dependencies holds everything the router wires together.
type Dependencies struct {
	Config         *config.Config
	AuthService    service.AuthService
	AuthHandler    *handler.AuthHandler
	InvoiceHandler *handler.InvoiceHandler
	HealthHandler  *handler.HealthHandler
	DBChecker      middleware.ReadinessChecker
}

// Setup builds the gin engine with all middleware and routes.
func Setup(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(deps.Config.CORS))

	r.GET("/", deps.HealthHandler.Root)
	r.GET("/healthz", deps.HealthHandler.Liveness)
	r.GET("/readyz", deps.HealthHandler.Readiness)

	// Everything under /api needs the database; requests arriving before the
	// first successful connection get a 503 instead of a driver error.
	api := r.Group("/api")
	api.Use(middleware.DBReady(deps.DBChecker))

	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.Signup)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.POST("/social", deps.AuthHandler.SocialLogin)
	}

	invoices := api.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware(deps.AuthService))
	{
		invoices.POST("", deps.InvoiceHandler.Create)
		invoices.GET("", deps.InvoiceHandler.List)
		invoices.POST("/preview", deps.InvoiceHandler.Preview)
		invoices.POST("/pdf", deps.InvoiceHandler.DraftPDF)
		invoices.GET("/export", deps.InvoiceHandler.Export)
		invoices.GET("/:id", deps.InvoiceHandler.GetByID)
		invoices.GET("/:id/pdf", deps.InvoiceHandler.PDF)
		invoices.DELETE("/:id", deps.InvoiceHandler.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		handler.RespondError(c, http.StatusNotFound, "Route not found")
	})

	return r
}
