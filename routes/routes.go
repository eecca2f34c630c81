package routes

import (
	"time"

	"matrimonial/handlers"
	"matrimonial/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers the profile wizard endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wizard")
	{
		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.Sessions))
		api.GET("/steps", hb.GetWizardSteps)

		sessions := api.Group("/sessions")
		sessions.POST("", hb.OpenWizardSession)
		sessions.GET("/:id", hb.GetWizardSession)
		sessions.GET("/:id/status", hb.GetWizardStatus)
		sessions.DELETE("/:id", hb.CloseWizardSession)
		sessions.PATCH("/:id/fields", hb.UpdateWizardField)
		sessions.POST("/:id/toggle", hb.ToggleWizardItem)
		sessions.POST("/:id/next", hb.NextWizardStep)
		sessions.POST("/:id/previous", hb.PreviousWizardStep)
		sessions.POST("/:id/jump", hb.JumpToWizardStep)
		sessions.POST("/:id/photos", hb.AddWizardPhotos)
		sessions.DELETE("/:id/photos/:index", hb.RemoveWizardPhoto)
		sessions.PUT("/:id/photos/:index/primary", hb.SetPrimaryPhoto)
		sessions.POST("/:id/submit", hb.SubmitWizard)
	}
}

// RegisterPreviewRoutes serves staged photo previews.
func RegisterPreviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/previews")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.Sessions))
		api.GET("/:handle", hb.GetPreview)
	}
}

// RegisterCountryRoutes registers the country lookup endpoints.
func RegisterCountryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/countries")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.Sessions))
		api.GET("", hb.SuggestCountries)
		api.GET("/:code", hb.GetCountry)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterPreviewRoutes(r, hb)
	RegisterCountryRoutes(r, hb)
}
