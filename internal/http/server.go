// README: API gateway; holds the wired services and builds the HTTP handler.
package http

import (
	"net/http"
	"time"

	"taxifare/internal/http/handlers"
	"taxifare/internal/http/middleware"
	"taxifare/internal/logger"
)

type ServerDeps struct {
	Fare          handlers.FareEstimator
	Pricing       handlers.RateTableService
	Routes        handlers.RoutesService
	Booking       handlers.BookingService
	Places        handlers.PlacesSearcher
	Live          handlers.LiveEstimator
	Tokens        *middleware.JWTManager
	AdminPassword string
	Location      *time.Location
	Log           logger.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.deps)
}
