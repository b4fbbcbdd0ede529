package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dq-report-service/internal/services/reporting"
)

type ReportHandler struct {
	service *reporting.Service
}

func NewReportHandler(s *reporting.Service) *ReportHandler {
	return &ReportHandler{service: s}
}

// Accordion returns the in-app view: one paginated table per failing category.
func (h *ReportHandler) Accordion(c *gin.Context) {
	var req dqReportRequest
	if !bind(c, &req) {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	c.JSON(http.StatusOK, h.service.Accordion(req.meta(), req.DataQualityCheck, page, pageSize))
}

func (h *ReportHandler) DrillDown(c *gin.Context) {
	var req drillDownRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.service.DrillDown(req.meta(), req.DataQualityCheck, req.Check, req.FailedRows))
}

func (h *ReportHandler) PDF(c *gin.Context) {
	var req dqReportRequest
	if !bind(c, &req) {
		return
	}

	data, err := h.service.PDF(req.meta(), req.DataQualityCheck)
	if err != nil {
		renderFailed(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "dq-report-" + req.UploadID + ".pdf",
	}))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandler) ListRenders(c *gin.Context) {
	uploadID := c.Param("uploadId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	renders, err := h.service.Renders(uploadID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": renders})
}
