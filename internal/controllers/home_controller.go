package controllers

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const homeTemplate = "index.html"

// loadTemplates разбирает встроенные html шаблоны.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// HomeController отдает html страницу со списком ссылок.
type HomeController struct {
	urlService URLShortener
}

func NewHomeController(urlService URLShortener) *HomeController {
	return &HomeController{urlService: urlService}
}

// Index обрабатывает GET /.
func (h *HomeController) Index(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	links, err := h.urlService.List(reqCtx)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("home page: %w", err))
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	ctx.HTML(http.StatusOK, homeTemplate, gin.H{"items": links})
}
