package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
	"github.com/yukikurage/project-task-api/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
	log     *logrus.Logger
}

func NewReportHandler(reports *services.ReportService, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		log:     log,
	}
}

// GetPerformanceReport returns the 30 day completion report. Managers only.
func (h *ReportHandler) GetPerformanceReport(c *gin.Context) {
	requesterID, ok := uuidQuery(c, "requesting_user_id")
	if !ok {
		return
	}

	report, err := h.reports.GetPerformanceReport(c.Request.Context(), requesterID)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
