package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/gdmrisk/internal/application"
	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/models"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/utils"
)

// AssessmentHandler handles HTTP requests for risk assessments and guidance.
type AssessmentHandler struct {
	service application.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(svc application.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: svc}
}

// CreateAssessment scores one patient.
// POST /api/v1/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req dto.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details, ok := utils.ValidationDetails(err); ok {
			dto.SendValidationError(c, details)
			return
		}
		dto.SendError(c, errors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	resp, err := h.service.Assess(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// GetAssessment returns a stored assessment outcome.
// GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	rec, err := h.service.FindAssessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, rec)
}

// GetGuidance returns the dietary guidance of a tier.
// GET /api/v1/guidance/:tier
func (h *AssessmentHandler) GetGuidance(c *gin.Context) {
	plan, err := h.service.Guidance(c.Param("tier"))
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, plan)
}

// ListTiers returns the tier thresholds and colors.
// GET /api/v1/tiers
func (h *AssessmentHandler) ListTiers(c *gin.Context) {
	dto.SendSuccess(c, http.StatusOK, h.service.Tiers())
}

// GetModel returns the versions of the loaded artifacts.
// GET /api/v1/model
func (h *AssessmentHandler) GetModel(c *gin.Context) {
	dto.SendSuccess(c, http.StatusOK, gin.H{
		"versions":   h.service.Versions(),
		"disclaimer": models.Disclaimer,
	})
}
