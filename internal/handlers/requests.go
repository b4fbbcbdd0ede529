package handler

import "dq-report-service/internal/models"

type inviteUserRequest struct {
	DisplayName string   `json:"displayName" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Groups      []string `json:"groups" binding:"required,dive,required"`
}

type uploadSuccessRequest struct {
	UploadID   string `json:"uploadId" binding:"required"`
	Dataset    string `json:"dataset" binding:"required"`
	UploadDate string `json:"uploadDate" binding:"required"`
}

type checkSuccessRequest struct {
	UploadID   string `json:"uploadId" binding:"required"`
	Dataset    string `json:"dataset" binding:"required"`
	UploadDate string `json:"uploadDate" binding:"required"`
	CheckDate  string `json:"checkDate" binding:"required"`
}

type dqReportRequest struct {
	UploadID         string                   `json:"uploadId" binding:"required"`
	Dataset          string                   `json:"dataset" binding:"required"`
	UploadDate       string                   `json:"uploadDate" binding:"required"`
	Country          string                   `json:"country"`
	CheckDate        string                   `json:"checkDate"`
	DataQualityCheck *models.DataQualityCheck `json:"dataQualityCheck"`
}

func (r dqReportRequest) meta() models.UploadMeta {
	return models.UploadMeta{
		UploadID:   r.UploadID,
		Dataset:    r.Dataset,
		Country:    r.Country,
		UploadDate: r.UploadDate,
		CheckDate:  r.CheckDate,
	}
}

type drillDownRequest struct {
	dqReportRequest
	Check      string              `json:"check" binding:"required"`
	FailedRows map[string][]string `json:"failedRows"`
}

// Counts are pointers so that an explicit 0 passes "required".
type masterDataReleaseRequest struct {
	Added      *int   `json:"added" binding:"required,gte=0"`
	Modified   *int   `json:"modified" binding:"required,gte=0"`
	Deleted    *int   `json:"deleted" binding:"required,gte=0"`
	Rows       *int   `json:"rows" binding:"required,gte=0"`
	Version    *int   `json:"version" binding:"required,gte=0"`
	Country    string `json:"country" binding:"required"`
	UpdateDate string `json:"updateDate" binding:"required"`
}
