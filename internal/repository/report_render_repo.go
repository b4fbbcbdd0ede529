package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dq-report-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ReportRenderRepository keeps a history of rendered emails. A nil DB turns
// every call into a no-op so the service can run without postgres.
type ReportRenderRepository struct {
	db *gorm.DB
}

func NewReportRenderRepository(db *gorm.DB) *ReportRenderRepository {
	return &ReportRenderRepository{db: db}
}

func (r *ReportRenderRepository) Enabled() bool {
	return r.db != nil
}

func (r *ReportRenderRepository) Create(render *models.ReportRender) error {
	if render.ID == uuid.Nil {
		render.ID = uuid.New()
	}
	if render.CreatedAt.IsZero() {
		render.CreatedAt = time.Now()
	}
	if r.db == nil {
		return nil
	}
	return r.db.Create(render).Error
}

// ListByUpload returns renders for uploadID, newest first.
func (r *ReportRenderRepository) ListByUpload(uploadID string, limit int) ([]models.ReportRender, error) {
	renders := []models.ReportRender{}
	if r.db == nil {
		return renders, nil
	}
	if limit <= 0 {
		limit = 50
	}
	err := r.db.
		Where("upload_id = ?", uploadID).
		Order("created_at DESC").
		Limit(limit).
		Find(&renders).Error
	return renders, err
}
