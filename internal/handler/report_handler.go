package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/service"
)

// ReportHandler serves the business report and its downloads.
type ReportHandler struct {
	svc *service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Get GET /reports?range=30d
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.svc.Build(c.DefaultQuery("range", "30d"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, report)
}

// Export GET /reports/export?range=30d&format=json|csv|xlsx
func (h *ReportHandler) Export(c *gin.Context) {
	report, err := h.svc.Build(c.DefaultQuery("range", "30d"))
	if err != nil {
		Fail(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := h.svc.ExportJSON(report)
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.json"`, stamp))
		c.Data(200, "application/json", data)

	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.csv"`, stamp))
		c.Data(200, "text/csv", h.svc.ExportCSV(report))

	case "xlsx":
		f, err := h.svc.ExportXLSX(report)
		if err != nil {
			InternalError(c, err.Error())
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.xlsx"`, stamp))
		c.Header("Content-Transfer-Encoding", "binary")
		if err := f.Write(c.Writer); err != nil {
			InternalError(c, "write excel: "+err.Error())
		}

	default:
		BadRequest(c, "format must be json, csv or xlsx")
	}
}
