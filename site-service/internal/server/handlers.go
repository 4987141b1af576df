package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/site-service/internal/pages"
)

func (s *Server) ResolvePage(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		path = "/"
	}
	res := pages.Resolve(path, ctx.Request.URL.Query())
	ctx.JSON(http.StatusOK, res)
}

func (s *Server) SectionReady(ctx *gin.Context) {
	id := ctx.Param("id")
	s.sections.MarkReady(id)
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AwaitSection answers whether the client should scroll. The wait is
// bounded; an absent section yields found=false with a 200, never an
// error.
func (s *Server) AwaitSection(ctx *gin.Context) {
	id := ctx.Param("id")

	wait := time.Duration(0)
	if raw := ctx.Query("wait_ms"); raw != "" {
		if ms, err := time.ParseDuration(raw + "ms"); err == nil && ms > 0 {
			wait = ms
		}
	}

	found := s.sections.AwaitSection(ctx.Request.Context(), id, wait)
	ctx.JSON(http.StatusOK, gin.H{
		"found":         found,
		"header_offset": pages.HeaderOffsetPx,
	})
}
