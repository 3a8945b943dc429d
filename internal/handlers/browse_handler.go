package handlers

import (
	"net/http"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// BrowseHandler - публичные страницы без авторизации
type BrowseHandler struct {
	*BaseHandler
	browseService services.BrowseService
}

func NewBrowseHandler(base *BaseHandler, browseService services.BrowseService) *BrowseHandler {
	return &BrowseHandler{
		BaseHandler:   base,
		browseService: browseService,
	}
}

func (h *BrowseHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/home", h.Home)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:jobId", h.GetJob)
	r.GET("/companies", h.ListCompanies)
}

func (h *BrowseHandler) Home(c *gin.Context) {
	resp, err := h.browseService.Home(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BrowseHandler) ListJobs(c *gin.Context) {
	var req dto.BrowseJobsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	resp, err := h.browseService.ListJobs(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BrowseHandler) GetJob(c *gin.Context) {
	card, err := h.browseService.GetJob(h.GetDB(c), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *BrowseHandler) ListCompanies(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", services.DefaultCompanyLimit)
	if limit <= 0 || limit > 100 {
		limit = services.DefaultCompanyLimit
	}
	companies, err := h.browseService.ListCompanies(c.Request.Context(), h.GetDB(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"total":     len(companies),
	})
}
