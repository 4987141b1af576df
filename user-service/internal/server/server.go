package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"

	"github.com/amasacademy/portal/user-service/internal/config"
	"github.com/amasacademy/portal/user-service/internal/domain/models"
	"github.com/amasacademy/portal/user-service/internal/logger"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   string
}

type Storage interface {
	SaveUser(models.User) (string, error)
	ValidUser(models.User) (models.User, error)
	GetUser(string) (models.User, error)
	SetPassword(uid, pass string) error
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	storage Storage
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
		storage: stor,
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.Register)
		auth.POST("/login", s.Login)
		// the login page itself sits behind the inverse gate
		auth.GET("/login", s.RedirectIfAuth("/perfil"), s.LoginPage)
	}
	users := router.Group("/users")
	{
		users.GET("/me", s.RequireAuth(), s.UserInfo)
		users.POST("/me/password", s.RequireAuth(), s.ChangePassword)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

// RequireAuth rejects requests without a valid session token.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log := logger.Get()
		uid, role, err := s.sessionFrom(ctx)
		if err != nil {
			log.Error().Err(err).Msg("validate jwt failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		ctx.Set("uid", uid)
		ctx.Set("role", role)
		ctx.Next()
	}
}

// RedirectIfAuth sends an already-authenticated session away from pages
// like the login form. The decision is a pure function of the parsed
// token; no state is mutated before redirecting, so a redirect loop
// cannot arise from a half-applied session.
func (s *Server) RedirectIfAuth(target string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if uid, _, err := s.sessionFrom(ctx); err == nil && uid != "" {
			ctx.Redirect(http.StatusSeeOther, target)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (s *Server) sessionFrom(ctx *gin.Context) (string, string, error) {
	tokenHeader := ctx.GetHeader("Authorization")
	if tokenHeader == "" {
		return "", "", ErrInvalidToken
	}
	tokenParts := strings.Split(tokenHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", "", ErrInvalidToken
	}
	return validToken(tokenParts[1], s.secret)
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

func createJWTToken(uid, role, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 3)),
		},
		UserID: uid,
		Role:   role,
	})
	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return tokenStr, nil
}
