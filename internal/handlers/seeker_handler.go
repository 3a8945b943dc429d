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

// SeekerHandler - дашборд соискателя: профиль, отклики, закладки
type SeekerHandler struct {
	*BaseHandler
	tokens             *auth.TokenManager
	profileService     services.ProfileService
	dashboardService   services.DashboardService
	applicationService services.ApplicationService
	savedJobService    services.SavedJobService
}

func NewSeekerHandler(
	base *BaseHandler,
	tokens *auth.TokenManager,
	profileService services.ProfileService,
	dashboardService services.DashboardService,
	applicationService services.ApplicationService,
	savedJobService services.SavedJobService,
) *SeekerHandler {
	return &SeekerHandler{
		BaseHandler:        base,
		tokens:             tokens,
		profileService:     profileService,
		dashboardService:   dashboardService,
		applicationService: applicationService,
		savedJobService:    savedJobService,
	}
}

func (h *SeekerHandler) RegisterRoutes(r *gin.RouterGroup) {
	seeker := r.Group("/seeker")
	seeker.Use(middleware.AuthMiddleware(h.tokens), middleware.RequireUserType(models.UserTypeSeeker))
	{
		seeker.GET("/dashboard", h.GetDashboard)
		seeker.GET("/profile", h.GetProfile)
		seeker.PUT("/profile", h.UploadBodyLimit(), h.UpdateProfile)

		seeker.GET("/applications", h.ListApplications)
		seeker.POST("/applications", h.Apply)
		seeker.DELETE("/applications/:applicationId", h.Withdraw)

		seeker.GET("/saved-jobs", h.ListSavedJobs)
		seeker.POST("/saved-jobs", h.SaveJob)
		seeker.DELETE("/saved-jobs/:savedJobId", h.RemoveSavedJob)
	}
}

func (h *SeekerHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.dashboardService.SeekerDashboard(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SeekerHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	seeker, err := h.profileService.ResolveSeeker(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, seeker)
}

// UpdateProfile принимает multipart/form-data (поле resume опционально) или JSON
func (h *SeekerHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSeekerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	resume, ok := h.OptionalFormFile(c, "resume")
	if !ok {
		return
	}

	resp, err := h.profileService.UpdateSeekerProfile(c.Request.Context(), h.GetDB(c), userID, &req, resume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Applications ---

func (h *SeekerHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListSeekerApplications(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

func (h *SeekerHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	item, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Withdraw - требует ?confirm=true
func (h *SeekerHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	appID := c.Param("applicationId")
	if err := h.applicationService.Withdraw(c.Request.Context(), h.GetDB(c), userID, appID, ParseConfirm(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      appID,
		"message": "Application withdrawn",
	})
}

// --- Saved jobs ---

func (h *SeekerHandler) ListSavedJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	saved, err := h.savedJobService.ListSavedJobs(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"saved_jobs": saved,
		"total":      len(saved),
	})
}

func (h *SeekerHandler) SaveJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.SaveJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	item, err := h.savedJobService.SaveJob(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *SeekerHandler) RemoveSavedJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	savedID := c.Param("savedJobId")
	if err := h.savedJobService.RemoveSavedJob(c.Request.Context(), h.GetDB(c), userID, savedID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      savedID,
		"message": "Saved job removed",
	})
}
