package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RenderKind string

const (
	RenderInviteUser        RenderKind = "invite_user"
	RenderUploadSuccess     RenderKind = "dq_report_upload_success"
	RenderCheckSuccess      RenderKind = "dq_report_check_success"
	RenderDQReport          RenderKind = "dq_report"
	RenderMasterDataRelease RenderKind = "master_data_release"
)

type ReportRender struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind        RenderKind     `gorm:"index" json:"kind"`
	UploadID    string         `gorm:"index" json:"upload_id"`
	Dataset     string         `json:"dataset"`
	RowsFailed  int            `json:"rows_failed"`
	PDFAttached bool           `json:"pdf_attached"`
	PDFError    string         `json:"pdf_error,omitempty"`
	Summary     datatypes.JSON `json:"summary"`
	HTML        string         `gorm:"type:text" json:"html,omitempty"`
	Text        string         `gorm:"type:text" json:"text,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
