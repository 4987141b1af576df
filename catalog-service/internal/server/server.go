package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"

	"github.com/amasacademy/portal/catalog-service/internal/config"
	"github.com/amasacademy/portal/catalog-service/internal/domain/models"
	"github.com/amasacademy/portal/catalog-service/internal/logger"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   string
}

type Storage interface {
	SaveProduct(models.Product) error
	SaveProducts([]models.Product) error
	GetProducts(search, category, sortBy string, ascending bool) ([]models.Product, error)
	GetProduct(string) (models.Product, error)
	DeleteProduct(string) error
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	Storage Storage
	secret  string
	ErrChan chan error
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:    &server,
		valid:   validator.New(),
		Storage: stor,
		secret:  cfg.JWTSecret,
		ErrChan: make(chan error),
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Save-Data"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	products := router.Group("/products")
	{
		products.GET("", s.AllProducts)
		products.GET("/:id", s.ProductInfo)
		products.POST("", s.RequireAdmin(), s.AddProduct)
		products.DELETE("/:id", s.RequireAdmin(), s.DeleteProduct)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log := logger.Get()
		tokenHeader := ctx.GetHeader("Authorization")
		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}
		uid, role, err := validToken(tokenParts[1], s.secret)
		if err != nil {
			log.Error().Err(err).Msg("validate jwt failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		ctx.Set("uid", uid)
		ctx.Next()
	}
}

func validToken(tokenStr, secret string) (string, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", ErrInvalidToken
	}
	return claims.UserID, claims.Role, nil
}
