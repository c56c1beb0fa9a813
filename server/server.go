package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/mailingservices"
	"github.com/haulmatch/loadboard/services"
	"github.com/haulmatch/loadboard/ws"
)

// Server wires the repositories, services and the realtime hub into
// the HTTP surface.
type Server struct {
	Config *config.Config
	Mail   *mailingservices.Mailgun
	Hub    *ws.Hub

	AuthRepository db.AuthRepository

	AuthService        services.AuthService
	LoadService        services.LoadService
	TruckService       services.TruckService
	ApplicationService services.ApplicationService
	ReviewService      services.ReviewService
	MessageService     services.MessageService
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("server started on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

// SetupTestRouter exposes the routes on a bare engine for handler tests.
func (s *Server) SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	s.defineRoutes(r)
	return r
}
