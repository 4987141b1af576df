package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/amasacademy/portal/cart-service/internal/checkout"
	"github.com/amasacademy/portal/cart-service/internal/config"
	"github.com/amasacademy/portal/cart-service/internal/logger"
	"github.com/amasacademy/portal/cart-service/internal/service"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   string
}

type Server struct {
	serv     *http.Server
	carts    *service.CartService
	checkout *checkout.Service
	secret   string
	ErrChan  chan error
}

func New(cfg config.Config, carts *service.CartService, co *checkout.Service) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:     &server,
		carts:    carts,
		checkout: co,
		secret:   cfg.JWTSecret,
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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	cart := router.Group("/cart", s.JWTAuthMiddleware())
	{
		cart.GET("", s.GetCart)
		cart.POST("/items", s.AddItem)
		cart.PUT("/items", s.UpdateQuantity)
		cart.DELETE("/items", s.RemoveItem)
		cart.DELETE("", s.ClearCart)
	}
	co := router.Group("/checkout", s.JWTAuthMiddleware())
	{
		co.POST("/orders", s.CreateOrder)
		co.POST("/confirmations", s.ConfirmProgramFee)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) JWTAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log := logger.Get()

		tokenHeader := ctx.GetHeader("Authorization")
		if tokenHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		uid, err := validToken(tokenParts[1], s.secret)
		if err != nil {
			log.Error().Err(err).Msg("validate jwt failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx.Set("uid", uid)
		ctx.Next()
	}
}

func validToken(tokenStr, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
