package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amasacademy/portal/catalog-service/internal/domain/models"
	"github.com/amasacademy/portal/catalog-service/internal/images"
	"github.com/amasacademy/portal/catalog-service/internal/logger"
	storerrros "github.com/amasacademy/portal/catalog-service/internal/storage/errors"
)

type productView struct {
	models.Product
	ImagePlaceholder string `json:"image_placeholder,omitempty"`
}

// saveData reports whether the client asked for reduced data usage,
// either via the Save-Data request header or an explicit query flag.
func saveData(ctx *gin.Context) bool {
	return ctx.GetHeader("Save-Data") == "on" || ctx.Query("save_data") == "true"
}

func present(ctx *gin.Context, product models.Product) productView {
	width, _ := strconv.Atoi(ctx.DefaultQuery("width", "0"))
	view := productView{Product: product}
	if product.Image != "" {
		view.Image = images.Variant(product.Image, width, saveData(ctx))
		view.ImagePlaceholder = images.Placeholder(product.Image)
	}
	return view
}

func (s *Server) AllProducts(ctx *gin.Context) {
	search := ctx.DefaultQuery("search", "")
	category := ctx.DefaultQuery("category", "")
	sortBy := ctx.DefaultQuery("sort_by", "name")
	ascending := ctx.DefaultQuery("ascending", "true") == "true"

	products, err := s.Storage.GetProducts(search, category, sortBy, ascending)
	if err != nil {
		if errors.Is(err, storerrros.ErrEmptyProductList) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, present(ctx, product))
	}
	ctx.JSON(http.StatusOK, views)
}

func (s *Server) ProductInfo(ctx *gin.Context) {
	id := ctx.Param("id")
	product, err := s.Storage.GetProduct(id)
	if err != nil {
		if errors.Is(err, storerrros.ErrProductNoExist) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, present(ctx, product))
}

func (s *Server) AddProduct(ctx *gin.Context) {
	log := logger.Get()
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		ctx.String(http.StatusBadRequest, "incorrectly entered data")
		return
	}
	if err := s.valid.Struct(product); err != nil {
		ctx.String(http.StatusBadRequest, "incorrectly entered data")
		return
	}
	if err := s.Storage.SaveProduct(product); err != nil {
		log.Error().Err(err).Str("uid", ctx.GetString("uid")).Msg("save product failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Info().Str("uid", ctx.GetString("uid")).Str("name", product.Name).Msg("product saved")
	ctx.JSON(http.StatusCreated, gin.H{"message": "product saved"})
}

func (s *Server) DeleteProduct(ctx *gin.Context) {
	log := logger.Get()
	id := ctx.Param("id")
	if err := s.Storage.DeleteProduct(id); err != nil {
		if errors.Is(err, storerrros.ErrProductNoExist) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Str("uid", ctx.GetString("uid")).Msg("delete product failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Info().Str("uid", ctx.GetString("uid")).Str("pid", id).Msg("product deleted")
	ctx.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
