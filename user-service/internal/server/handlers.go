package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/user-service/internal/domain/models"
	"github.com/amasacademy/portal/user-service/internal/logger"
	storerrros "github.com/amasacademy/portal/user-service/internal/storage/errors"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Pass     string `json:"pass" validate:"required,min=8"`
	Name     string `json:"name"`
	LastName string `json:"lastname"`
	Phone    string `json:"phone"`
}

// authResponse follows the identity-provider contract the site consumed:
// success flag, optional message, optional forced password change.
type authResponse struct {
	Success               bool   `json:"success"`
	Message               string `json:"message,omitempty"`
	RequirePasswordChange bool   `json:"requirePasswordChange,omitempty"`
}

func (s *Server) Register(ctx *gin.Context) {
	log := logger.Get()
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, authResponse{Success: false, Message: "incorrectly entered data"})
		return
	}
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, authResponse{Success: false, Message: "incorrectly entered data"})
		return
	}

	uid, err := s.storage.SaveUser(models.User{
		Email:    req.Email,
		Pass:     req.Pass,
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, storerrros.ErrUserExists) {
			ctx.JSON(http.StatusConflict, authResponse{Success: false, Message: "user already exists"})
			return
		}
		log.Error().Err(err).Msg("save user failed")
		ctx.JSON(http.StatusInternalServerError, authResponse{Success: false, Message: "registration failed"})
		return
	}

	token, err := createJWTToken(uid, "user", s.secret)
	if err != nil {
		log.Error().Err(err).Msg("create jwt failed")
		ctx.JSON(http.StatusInternalServerError, authResponse{Success: false, Message: "registration failed"})
		return
	}

	ctx.Header("Authorization", token)
	ctx.JSON(http.StatusCreated, authResponse{Success: true})
}

func (s *Server) Login(ctx *gin.Context) {
	log := logger.Get()
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("unmarshal body failed")
		ctx.JSON(http.StatusBadRequest, authResponse{Success: false, Message: "incorrectly entered data"})
		return
	}

	user, err := s.storage.ValidUser(models.User{Email: req.Email, Pass: req.Pass})
	if err != nil {
		if errors.Is(err, storerrros.ErrUserNoExist) || errors.Is(err, storerrros.ErrInvalidPassword) {
			ctx.JSON(http.StatusUnauthorized, authResponse{Success: false, Message: "invalid login or password"})
			return
		}
		log.Error().Err(err).Msg("validate user failed")
		ctx.JSON(http.StatusInternalServerError, authResponse{Success: false, Message: "login failed"})
		return
	}

	token, err := createJWTToken(user.UID, user.Role, s.secret)
	if err != nil {
		log.Error().Err(err).Msg("create jwt failed")
		ctx.JSON(http.StatusInternalServerError, authResponse{Success: false, Message: "login failed"})
		return
	}

	ctx.Header("Authorization", token)
	ctx.JSON(http.StatusOK, authResponse{
		Success:               true,
		RequirePasswordChange: user.RequirePasswordChange,
	})
}

// LoginPage only answers when RedirectIfAuth let the request through.
func (s *Server) LoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (s *Server) UserInfo(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	user, err := s.storage.GetUser(uid)
	if err != nil {
		log.Error().Err(err).Msg("failed get user from db")
		if errors.Is(err, storerrros.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user.Pass = ""
	ctx.JSON(http.StatusOK, user)
}

type passwordRequest struct {
	Pass string `json:"pass" validate:"required,min=8"`
}

func (s *Server) ChangePassword(ctx *gin.Context) {
	log := logger.Get()
	uid := ctx.GetString("uid")

	var req passwordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		return
	}

	if err := s.storage.SetPassword(uid, req.Pass); err != nil {
		log.Error().Err(err).Msg("failed to set password")
		if errors.Is(err, storerrros.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set password"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
