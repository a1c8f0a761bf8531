package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/cremis/internal/config"
)

// NewRouter wires routes and middleware.
func NewRouter(h *Handler, cfg config.Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID(), Metrics())

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	}

	r.GET("/healthz", h.Health)
	r.GET("/questions", h.ListQuestions)
	r.GET("/tiers", h.ListTiers)
	r.POST("/submit", h.Submit)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept", "Origin", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	return cc
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Server, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api.Serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api.Serve: shutdown: %w", err)
	}
	return nil
}
