package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/email"
	"dq-report-service/internal/services/reporting"
)

type EmailHandler struct {
	service *reporting.Service
}

func NewEmailHandler(s *reporting.Service) *EmailHandler {
	return &EmailHandler{service: s}
}

func (h *EmailHandler) InviteUser(c *gin.Context) {
	var req inviteUserRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.InviteUser(email.InviteUser{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Groups:      req.Groups,
	})
	if err != nil {
		renderFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *EmailHandler) UploadSuccess(c *gin.Context) {
	var req uploadSuccessRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.UploadSuccess(models.UploadMeta{
		UploadID:   req.UploadID,
		Dataset:    req.Dataset,
		UploadDate: req.UploadDate,
	})
	if err != nil {
		renderFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *EmailHandler) CheckSuccess(c *gin.Context) {
	var req checkSuccessRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.CheckSuccess(models.UploadMeta{
		UploadID:   req.UploadID,
		Dataset:    req.Dataset,
		UploadDate: req.UploadDate,
		CheckDate:  req.CheckDate,
	})
	if err != nil {
		renderFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": out.HTML, "text": out.Text, "pdf": nil})
}

// DQReport renders the full report. pdf is base64 or null; a failed PDF never fails the request.
func (h *EmailHandler) DQReport(c *gin.Context) {
	var req dqReportRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.DQReport(req.meta(), req.DataQualityCheck)
	if err != nil {
		renderFailed(c, err)
		return
	}

	var pdf *string
	if res.PDF != nil {
		encoded := base64.StdEncoding.EncodeToString(res.PDF)
		pdf = &encoded
	}
	c.JSON(http.StatusOK, gin.H{"html": res.HTML, "text": res.Text, "pdf": pdf})
}

func (h *EmailHandler) MasterDataRelease(c *gin.Context) {
	var req masterDataReleaseRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.service.MasterDataRelease(email.MasterDataRelease{
		Added:      *req.Added,
		Modified:   *req.Modified,
		Deleted:    *req.Deleted,
		Rows:       *req.Rows,
		Version:    *req.Version,
		Country:    req.Country,
		UpdateDate: req.UpdateDate,
	})
	if err != nil {
		renderFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
