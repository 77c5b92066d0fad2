package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledgelink/internal/app"
	"knowledgelink/internal/model"
	"knowledgelink/internal/transport/http/middleware"
	"knowledgelink/internal/transport/http/response"
)

type LinkHandler struct {
	linkService *app.LinkService
}

type SubmitLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

// LinkResponse is the list projection: the embedding and owner stay private.
type LinkResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

func NewLinkHandler(linkService *app.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

func (h *LinkHandler) Submit(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "no principal on request")
		return
	}

	var req SubmitLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.linkService.Submit(c.Request.Context(), principal, req.URL)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Link added successfully!",
		"title":   result.Title,
		"summary": result.Summary,
	})
}

func (h *LinkHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "no principal on request")
		return
	}

	links, err := h.linkService.List(c.Request.Context(), principal)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]LinkResponse, 0, len(links))
	for _, link := range links {
		out = append(out, LinkResponse{
			URL:     link.URL,
			Title:   link.Title,
			Summary: link.Summary,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *LinkHandler) Search(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "no principal on request")
		return
	}

	results, err := h.linkService.Search(c.Request.Context(), principal, c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if results == nil {
		results = []model.LinkSearchResult{}
	}
	c.JSON(http.StatusOK, results)
}

// writeServiceError maps service error kinds to HTTP statuses and codes.
// The detail string carries the wrapped stage error for the caller.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrFetch):
		response.Error(c, http.StatusBadRequest, response.CodeScrapeFailed, err.Error())
	case errors.Is(err, app.ErrEmbedding), errors.Is(err, app.ErrSummarization):
		response.Error(c, http.StatusInternalServerError, response.CodeAIGenerationFailed, err.Error())
	case errors.Is(err, app.ErrStorage):
		response.Error(c, http.StatusInternalServerError, response.CodeStorageFailed, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
	}
}
