package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/registration-service/internal/attachments"
	"github.com/amasacademy/portal/registration-service/internal/domain/models"
	"github.com/amasacademy/portal/registration-service/internal/logger"
	"github.com/amasacademy/portal/registration-service/internal/programs"
)

type programView struct {
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Fee              int    `json:"fee"`
	UniformPrice     int    `json:"uniform_price,omitempty"`
	RequiresGuardian bool   `json:"requires_guardian"`
	AllowsAttachment bool   `json:"allows_attachment"`
}

type registrationRequest struct {
	NombreAlumno      string `json:"nombre_alumno"`
	NombreApoderado   string `json:"nombre_apoderado"`
	FechaNacimiento   string `json:"fecha_nacimiento"`
	Correo            string `json:"correo"`
	Telefono          string `json:"telefono"`
	TallaUniforme     string `json:"talla_uniforme"`
	CantidadUniformes int    `json:"cantidad_uniformes"`
	Comentario        string `json:"comentario"`
	Adjunto           string `json:"adjunto"`
}

func (s *Server) ListPrograms(ctx *gin.Context) {
	defs := programs.All()
	views := make([]programView, 0, len(defs))
	for _, def := range defs {
		views = append(views, programView{
			Slug:             def.Slug,
			Title:            def.Title,
			Fee:              def.Fee,
			UniformPrice:     def.UniformPrice,
			RequiresGuardian: def.RequiresGuardian,
			AllowsAttachment: def.AllowsAttachment,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"programs": views})
}

func (s *Server) SubmitRegistration(ctx *gin.Context) {
	log := logger.Get()

	def, ok := programs.Find(ctx.Param("program"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "programa no encontrado"})
		return
	}

	var req registrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("incorrectly entered data")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "incorrectly entered data"})
		return
	}

	reg := models.Registration{
		Programa:          def.Slug,
		NombreAlumno:      req.NombreAlumno,
		NombreApoderado:   req.NombreApoderado,
		FechaNacimiento:   req.FechaNacimiento,
		Correo:            req.Correo,
		Telefono:          req.Telefono,
		TallaUniforme:     req.TallaUniforme,
		CantidadUniformes: req.CantidadUniformes,
		Comentario:        req.Comentario,
		Adjunto:           req.Adjunto,
	}

	// everything local fails before anything goes on the wire
	if fieldErrs := def.Validate(reg); fieldErrs != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "fields": fieldErrs})
		return
	}
	if err := attachments.Check(reg.Adjunto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "fields": gin.H{"adjunto": attachmentMessage(err)}})
		return
	}

	reg.Total = def.Total(reg)
	reg.EnviadoEn = time.Now().UTC()

	if err := s.poster.Post(ctx.Request.Context(), def.WebhookURL(s.hookBase), reg); err != nil {
		log.Error().Err(err).Str("program", def.Slug).Msg("form webhook post failed")
		ctx.JSON(http.StatusBadGateway, gin.H{
			"status":  "failed",
			"message": "no pudimos enviar tu inscripcion, intenta de nuevo",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "submitted", "total": reg.Total})
}

func attachmentMessage(err error) string {
	switch {
	case errors.Is(err, attachments.ErrTooLarge):
		return "el archivo supera los 3MB"
	case errors.Is(err, attachments.ErrTypeNotAllowed):
		return "solo se aceptan JPG, PNG o PDF"
	default:
		return "el archivo no es valido"
	}
}
