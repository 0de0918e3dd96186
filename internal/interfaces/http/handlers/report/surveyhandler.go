package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/application/report/usecases"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

// SurveyHandler serves the token-addressed satisfaction survey. Both routes
// are public; possession of the token is the only credential.
type SurveyHandler struct {
	getUC    usecases.GetSurveyExecutor
	submitUC usecases.SubmitSurveyExecutor
	logger   logger.Interface
}

func NewSurveyHandler(getUC usecases.GetSurveyExecutor, submitUC usecases.SubmitSurveyExecutor, logger logger.Interface) *SurveyHandler {
	return &SurveyHandler{getUC: getUC, submitUC: submitUC, logger: logger}
}

// GetSurvey handles GET /reports/survey/:token
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("survey token is required"))
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), token)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SubmitSurvey handles POST /reports/survey/:token
func (h *SurveyHandler) SubmitSurvey(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("survey token is required"))
		return
	}

	var req SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for survey", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), usecases.SubmitSurveyCommand{
		Token:   token,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Thank you for your feedback", result)
}
