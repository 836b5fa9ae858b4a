// File: internal/profile/handler.go
package profile

import (
	"errors"
	"net/http"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile")
	{
		profileGroup.GET("", h.getAllProfiles)
		profileGroup.GET("/user/:user_id", h.getProfileByUser)

		authedGroup := profileGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.GET("/me", h.getOwnProfile)
			authedGroup.POST("", h.upsertProfile)
			authedGroup.DELETE("", h.deleteProfile)
			authedGroup.PUT("/experience", h.addExperience)
			authedGroup.DELETE("/experience/:exp_id", h.removeExperience)
			authedGroup.PUT("/education", h.addEducation)
			authedGroup.DELETE("/education/:edu_id", h.removeEducation)
		}
	}
}

// bindJSON decodes and validates the request body, responding on failure.
// Returns false when the request has already been answered.
func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("Invalid request body", zap.Error(err), zap.String("path", c.Request.URL.Path))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) getOwnProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	p, err := h.service.GetOwn(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) upsertProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req UpsertProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) getAllProfiles(c *gin.Context) {
	profiles, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ToProfileResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) getProfileByUser(c *gin.Context) {
	paramID := c.Param("user_id")
	userID, err := uuid.Parse(paramID)
	if err != nil {
		// A malformed id is reported the same as a missing profile.
		h.logger.Warn("Invalid user ID format in URL parameter", zap.String("paramID", paramID))
		common.RespondWithError(c, errProfileLookup)
		return
	}

	p, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) deleteProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if err := h.service.DeleteOwn(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *Handler) addExperience(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req AddExperienceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.AddExperience(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) removeExperience(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		common.RespondWithError(c, errEntryNotFound)
		return
	}

	p, err := h.service.RemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) addEducation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req AddEducationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.service.AddEducation(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}

func (h *Handler) removeEducation(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		common.RespondWithError(c, errEntryNotFound)
		return
	}

	p, err := h.service.RemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(p))
}
