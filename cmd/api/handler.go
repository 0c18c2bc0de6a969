package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	summaryDelivery "meetnotes-backend/internal/summary/delivery"
	"meetnotes-backend/internal/summary/usecase"
	"meetnotes-backend/pkg/config"
	"meetnotes-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	summaryHandler *summaryDelivery.SummaryHandler
	db             *gorm.DB
	sender         mailer.Sender
	config         *config.Config
	startedAt      time.Time
}

func NewHandler(summaryUc usecase.SummaryUsecase, db *gorm.DB, sender mailer.Sender, cfg *config.Config) *Handler {
	return &Handler{
		summaryHandler: summaryDelivery.NewSummaryHandler(summaryUc, cfg.IsDevelopment()),
		db:             db,
		sender:         sender,
		config:         cfg,
		startedAt:      time.Now(),
	}
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func (h *Handler) Start(addr string) error {
	if !h.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 10 << 20
	r.Use(requestLogger())
	r.Use(recoveryMiddleware(h.config.IsDevelopment()))
	r.Use(corsMiddleware())
	r.Use(rateLimitMiddleware())

	SetupRoutes(r, h, h.summaryHandler)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Health handles GET /health. It reports database reachability and email
// configuration validity; an unreachable database makes the service
// unhealthy.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}

	emailStatus := "not configured"
	if h.sender != nil {
		verifyCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if verifyErr := h.sender.Verify(verifyCtx); verifyErr == nil {
			emailStatus = "configured"
		} else {
			slog.Warn("email configuration verification failed", "error", verifyErr)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
		"database":  "connected",
		"email":     emailStatus,
		"env": gin.H{
			"appEnv":    h.config.Env,
			"port":      h.config.Port,
			"webOrigin": h.config.WebOrigin,
		},
	})
}
