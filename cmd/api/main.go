package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shiftboard/internal/access"
	"shiftboard/internal/auth"
	"shiftboard/internal/config"
	"shiftboard/internal/handler"
	"shiftboard/internal/httpmiddleware"
	"shiftboard/internal/queue"
	"shiftboard/internal/shift"
	"shiftboard/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, queue.DecisionsKey)
	}

	repo := shift.NewRepository(db.Client)
	control := access.New(cfg.AdminCode, cfg.HRCode, cfg.ManagerPasswords)
	h := handler.New(repo, control, q, shift.SystemClock(),
		cfg.JWTSigningKey, cfg.JWTIssuer, cfg.SessionTTL, cfg.BaseHourlyRate)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db != nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	v1 := r.Group("/v1")

	// Gate-code logins
	v1.POST("/auth/manager", h.ManagerLogin)
	v1.POST("/auth/hr", h.HRLogin)
	v1.POST("/auth/admin", h.AdminLogin)

	// Employee self-service; the employee surface has no credential beyond
	// the device binding, matching the original flow.
	v1.POST("/employees", h.RegisterEmployee)
	v1.GET("/employees/auto-login", h.AutoLogin)
	v1.GET("/employees/:id", h.CheckEmployee)
	v1.GET("/shifts/available-dates", h.AvailableDates)
	v1.POST("/shifts", h.SubmitShift)
	v1.GET("/shifts", h.ShiftHistory)
	v1.GET("/roster", h.Roster)
	v1.GET("/overtime", h.Overtime)

	// Manager surface, scoped to the section carried in the token.
	managers := v1.Group("/section", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer, "manager", "admin"))
	managers.GET("/pending", h.SectionPending)
	managers.GET("/history", h.SectionHistory)
	managers.GET("/export", h.SectionExport)
	v1.POST("/entries/:id/approve", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer, "manager", "admin"), h.ApproveEntry)
	v1.POST("/entries/:id/reject", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer, "manager", "admin"), h.RejectEntry)

	// HR surface
	hr := v1.Group("/hr", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer, "hr", "admin"))
	hr.GET("/entries", h.HREntries)
	hr.GET("/export", h.HRExport)

	// Admin surface
	admin := v1.Group("/admin", auth.Require(cfg.JWTSigningKey, cfg.JWTIssuer, "admin"))
	admin.GET("/employees", h.AdminEmployees)
	admin.POST("/employees/:id/approve", h.ApproveEmployeeProfile)
	admin.DELETE("/employees/:id", h.RejectEmployeeProfile)
	admin.POST("/password", h.ChangePassword)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
