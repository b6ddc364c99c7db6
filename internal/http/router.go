// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxifare/internal/http/handlers"
	"taxifare/internal/http/middleware"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Log), middleware.Recovery(deps.Log), middleware.Metrics())

	fareHandler := handlers.NewFareHandler(deps.Fare, deps.Location)
	r.POST("/api/fare/estimate", fareHandler.Estimate)

	liveHandler := handlers.NewLiveHandler(deps.Live, deps.Location)
	r.POST("/api/estimates/live", liveHandler.Schedule)
	r.GET("/api/estimates/live/:session", liveHandler.Latest)
	r.DELETE("/api/estimates/live/:session", liveHandler.Forget)

	pricingHandler := handlers.NewPricingHandler(deps.Pricing)
	r.GET("/api/pricing", pricingHandler.Get)

	routesHandler := handlers.NewRoutesHandler(deps.Routes)
	r.GET("/api/routes", routesHandler.ListPriced)

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	r.POST("/api/bookings", bookingHandler.Create)

	placesHandler := handlers.NewPlacesHandler(deps.Places)
	r.GET("/api/places/autocomplete", placesHandler.Autocomplete)

	adminHandler := handlers.NewAdminHandler(deps.AdminPassword, deps.Tokens)
	r.POST("/api/admin/login", adminHandler.Login)

	admin := r.Group("/api/admin", middleware.Auth(deps.Tokens))
	admin.PUT("/pricing", pricingHandler.Update)
	admin.GET("/routes", routesHandler.List)
	admin.POST("/routes", routesHandler.Create)
	admin.DELETE("/routes/:id", routesHandler.Delete)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
