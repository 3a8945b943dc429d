package handlers

import (
	"net/http"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CompanyHandler - дашборд компании и его подразделы
type CompanyHandler struct {
	*BaseHandler
	tokens             *auth.TokenManager
	profileService     services.ProfileService
	dashboardService   services.DashboardService
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewCompanyHandler(
	base *BaseHandler,
	tokens *auth.TokenManager,
	profileService services.ProfileService,
	dashboardService services.DashboardService,
	jobService services.JobService,
	applicationService services.ApplicationService,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:        base,
		tokens:             tokens,
		profileService:     profileService,
		dashboardService:   dashboardService,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	company := r.Group("/company")
	company.Use(middleware.AuthMiddleware(h.tokens), middleware.RequireUserType(models.UserTypeCompany))
	{
		company.GET("/dashboard", h.GetDashboard)
		company.GET("/profile", h.GetProfile)
		company.PUT("/profile", h.UploadBodyLimit(), h.UpdateProfile)

		company.GET("/jobs", h.ListJobs)
		company.POST("/jobs", h.CreateJob)
		company.GET("/jobs/:jobId", h.GetJob)
		company.PUT("/jobs/:jobId", h.UpdateJob)
		company.DELETE("/jobs/:jobId", h.DeleteJob)

		company.GET("/applications", h.ListApplications)
		company.PATCH("/applications/:applicationId/status", h.UpdateApplicationStatus)
	}
}

// --- Dashboard & profile ---

func (h *CompanyHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.dashboardService.CompanyDashboard(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	company, err := h.profileService.ResolveCompany(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// UpdateProfile принимает multipart/form-data (поле logo опционально) или JSON
func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCompanyProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	logo, ok := h.OptionalFormFile(c, "logo")
	if !ok {
		return
	}

	resp, err := h.profileService.UpdateCompanyProfile(c.Request.Context(), h.GetDB(c), userID, &req, logo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Jobs ---

func (h *CompanyHandler) ListJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobs, err := h.jobService.ListCompanyJobs(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

func (h *CompanyHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *CompanyHandler) GetJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	job, err := h.jobService.GetCompanyJob(h.GetDB(c), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *CompanyHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), userID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob - требует ?confirm=true
func (h *CompanyHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	jobID := c.Param("jobId")
	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), userID, jobID, ParseConfirm(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      jobID,
		"message": "Job deleted successfully",
	})
}

// --- Applications ---

func (h *CompanyHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListCompanyApplications(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

func (h *CompanyHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	item, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), userID, c.Param("applicationId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
