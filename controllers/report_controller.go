package controllers

import (
	"net/http"

	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// Revenue reports billed revenue over an optional date range
// (GET /api/reports/revenue?start=...&end=...).
func (ctl *ReportController) Revenue(c *gin.Context) {
	start, err := parseOptionalDate(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseOptionalDate(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end date")
		return
	}
	report, err := ctl.Reports.Revenue(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// Occupancy snapshots the current room statuses (GET /api/reports/occupancy).
func (ctl *ReportController) Occupancy(c *gin.Context) {
	report, err := ctl.Reports.Occupancy()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
