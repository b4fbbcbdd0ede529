package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dq-report-service/internal/models"
)

type UploadWatchRepository struct {
	db *gorm.DB
}

func NewUploadWatchRepository(db *gorm.DB) *UploadWatchRepository {
	return &UploadWatchRepository{db: db}
}

// Save upserts the watch keyed by upload id.
func (r *UploadWatchRepository) Save(w *models.UploadWatch) error {
	if r.db == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "upload_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "attempts", "last_error", "completed_at", "updated_at"}),
	}).Create(w).Error
}

func (r *UploadWatchRepository) Get(uploadID string) (*models.UploadWatch, error) {
	if r.db == nil {
		return nil, ErrNotFound
	}
	var w models.UploadWatch
	err := r.db.First(&w, "upload_id = ?", uploadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListPending returns watches that were still running, used to resume after a restart.
func (r *UploadWatchRepository) ListPending() ([]models.UploadWatch, error) {
	var watches []models.UploadWatch
	if r.db == nil {
		return watches, nil
	}
	err := r.db.Where("status = ?", models.StatusPending).Find(&watches).Error
	return watches, err
}
