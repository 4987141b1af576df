package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/site-service/internal/config"
	"github.com/amasacademy/portal/site-service/internal/logger"
	"github.com/amasacademy/portal/site-service/internal/sections"
)

type Server struct {
	serv     *http.Server
	sections *sections.Registry
	rps      int
	ErrChan  chan error
}

func New(cfg config.Config, reg *sections.Registry) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:     &server,
		sections: reg,
		rps:      cfg.RPS,
		ErrChan:  make(chan error),
	}
}

func (s *Server) ShutdownServer() error {
	return s.serv.Shutdown(context.Background())
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	router.Use(SecurityHeadersMiddleware())
	router.Use(s.RateLimitMiddleware())
	router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/resolve", s.ResolvePage)
	router.POST("/sections/:id/ready", s.SectionReady)
	router.GET("/sections/:id/wait", s.AwaitSection)

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		ctx.Next()
	}
}

// RateLimitMiddleware throttles by client ip. These endpoints are
// unauthenticated, so this is the only brake on abuse.
func (s *Server) RateLimitMiddleware() gin.HandlerFunc {
	limiters := newIPLimiters(s.rps, limiterIdleTTL)

	return func(ctx *gin.Context) {
		if !limiters.allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		ctx.Next()
	}
}
