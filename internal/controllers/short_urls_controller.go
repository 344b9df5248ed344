package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/fsdevblog/tinyurl/internal/services"
)

type ShortURLController struct {
	urlService URLShortener
}

func NewShortURLController(urlService URLShortener) *ShortURLController {
	return &ShortURLController{urlService: urlService}
}

// createRequest тело запроса POST /shorten.
type createRequest struct {
	URL string `json:"url"`
}

// createResponse ответ на POST /shorten.
type createResponse struct {
	Code        string `json:"code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// linkResponse элемент ответа GET /urls.
type linkResponse struct {
	Code        string `json:"code"`
	OriginalURL string `json:"original_url"`
	Hits        uint64 `json:"hits"`
}

// deleteResponse ответ на DELETE /urls/:code.
type deleteResponse struct {
	Deleted string `json:"deleted"`
}

// Create обрабатывает POST /shorten.
//
// Тело запроса: {"url": "https://..."}.
//
// В случае успеха возвращает:
//   - HTTP 200 OK с {"code", "short_url", "original_url"}
//
// В случае ошибки возвращает:
//   - HTTP 422 если тело не разбирается как JSON
//   - HTTP 400 если ссылка не начинается с http:// или https://
//   - HTTP 500 при ошибке хранилища
func (s *ShortURLController) Create(ctx *gin.Context) {
	var req createRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(fmt.Errorf("bind create request: %w", err))
		abortWithDetail(ctx, http.StatusUnprocessableEntity, invalidBodyDetail)
		return
	}

	if !services.Validate(req.URL) {
		abortWithDetail(ctx, http.StatusBadRequest, invalidURLDetail)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := s.urlService.Create(reqCtx, req.URL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidURL) {
			abortWithDetail(ctx, http.StatusBadRequest, invalidURLDetail)
			return
		}
		_ = ctx.Error(fmt.Errorf("create short url: %w", err))
		abortWithDetail(ctx, http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	ctx.JSON(http.StatusOK, createResponse{
		Code:        link.Code,
		ShortURL:    "/" + link.Code,
		OriginalURL: link.OriginalURL,
	})
}

// List обрабатывает GET /urls. Ссылки отдаются от новых к старым.
func (s *ShortURLController) List(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	links, err := s.urlService.List(reqCtx)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("list short urls: %w", err))
		abortWithDetail(ctx, http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	resp := make([]linkResponse, len(links))
	for i, l := range links {
		resp[i] = linkResponse{Code: l.Code, OriginalURL: l.OriginalURL, Hits: l.Hits}
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete обрабатывает DELETE /urls/:code.
func (s *ShortURLController) Delete(ctx *gin.Context) {
	code := ctx.Param("code")

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	deleted, err := s.urlService.Delete(reqCtx, code)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("delete short url: %w", err))
		abortWithDetail(ctx, http.StatusInternalServerError, ErrInternal.Error())
		return
	}
	if !deleted {
		abortWithDetail(ctx, http.StatusNotFound, notFoundDetail)
		return
	}

	ctx.JSON(http.StatusOK, deleteResponse{Deleted: code})
}

// Redirect обрабатывает GET /:code и отвечает 307 на оригинальную ссылку.
// Коды длиннее models.MaxCodeLength отсекаются без обращения к хранилищу.
func (s *ShortURLController) Redirect(ctx *gin.Context) {
	code := ctx.Param("code")

	if len(code) > models.MaxCodeLength {
		abortWithDetail(ctx, http.StatusNotFound, notFoundDetail)
		return
	}

	target, err := s.urlService.Resolve(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			abortWithDetail(ctx, http.StatusNotFound, notFoundDetail)
			return
		}
		_ = ctx.Error(fmt.Errorf("resolve short url: %w", err))
		abortWithDetail(ctx, http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, target)
}
