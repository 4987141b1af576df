package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/registration-service/internal/config"
	"github.com/amasacademy/portal/registration-service/internal/logger"
	"github.com/amasacademy/portal/registration-service/internal/webhook"
)

// Registration forms are public; a visitor enrolls before an account
// exists, so nothing here sits behind auth.
type Server struct {
	serv     *http.Server
	poster   webhook.Poster
	hookBase string
	ErrChan  chan error
}

func New(cfg config.Config, poster webhook.Poster) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:     &server,
		poster:   poster,
		hookBase: cfg.FormWebhookBase,
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
	router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/programs", s.ListPrograms)
	router.POST("/registrations/:program", s.SubmitRegistration)

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}
