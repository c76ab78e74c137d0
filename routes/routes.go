package routes

import (
	"time"

	"queuepoint/handlers"
	"queuepoint/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerBundle aggregates the portal's handlers for route registration.
type HandlerBundle struct {
	Session   *handlers.SessionHandler
	Directory *handlers.DirectoryHandler
	Wizard    *handlers.WizardHandler
}

// RegisterSessionRoutes registers the auth session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/portal/session")
	{
		api.POST("/login", hb.Session.LoginHandler)
		api.POST("/logout", hb.Session.LogoutHandler)
		api.GET("", hb.Session.CurrentSessionHandler)
		api.POST("/resume", hb.Session.ResumeSessionHandler)
		api.PUT("/profile", hb.Session.UpdateProfileHandler)
	}
}

// RegisterDirectoryRoutes registers the business directory endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/portal/directory")
	{
		api.GET("/businesses", hb.Directory.ListBusinessesHandler)
	}
}

// RegisterWizardRoutes sets up the endpoints for the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/portal/wizard")
	{
		api.POST("", hb.Wizard.StartHandler)
		api.GET("/:sessionID", hb.Wizard.GetHandler)
		api.POST("/:sessionID/select", hb.Wizard.SelectDepartmentHandler)
		api.POST("/:sessionID/details", hb.Wizard.SubmitDetailsHandler)
		api.POST("/:sessionID/back", hb.Wizard.BackHandler)
		api.POST("/:sessionID/confirm", hb.Wizard.ConfirmHandler)
		api.POST("/:sessionID/reset", hb.Wizard.ResetHandler)
		api.GET("/:sessionID/qr", hb.Wizard.QRCodeHandler)
	}
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.PortalSessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.PortalSessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PortalSessionMiddleware())

	RegisterSessionRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterHealthRoute(r)
}
