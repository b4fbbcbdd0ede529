package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dq-report-service/internal/models"
)

// openDB returns a migrated in-memory sqlite database private to the test.
func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.ReportRender{}, &models.UploadWatch{}))
	return db
}

func TestReportRenderRepository_When_Disabled(t *testing.T) {
	t.Parallel()

	repo := NewReportRenderRepository(nil)
	render := &models.ReportRender{Kind: models.RenderDQReport, UploadID: "u-1"}

	require.NoError(t, repo.Create(render))
	assert.False(t, repo.Enabled())
	assert.NotEqual(t, uuid.Nil, render.ID, "id is assigned even without a database")
	assert.False(t, render.CreatedAt.IsZero())

	list, err := repo.ListByUpload("u-1", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadWatchRepository_When_Disabled(t *testing.T) {
	t.Parallel()

	repo := NewUploadWatchRepository(nil)

	require.NoError(t, repo.Save(&models.UploadWatch{UploadID: "u-1", Status: models.StatusPending}))

	_, err := repo.Get("u-1")
	assert.ErrorIs(t, err, ErrNotFound)

	pending, err := repo.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReportRenderRepository_ListByUpload_NewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewReportRenderRepository(openDB(t))
	require.True(t, repo.Enabled())

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, kind := range []models.RenderKind{models.RenderUploadSuccess, models.RenderCheckSuccess, models.RenderDQReport} {
		require.NoError(t, repo.Create(&models.ReportRender{
			Kind:      kind,
			UploadID:  "u-1",
			Dataset:   "geolocation",
			Summary:   []byte(`{"rows_failed":5}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(&models.ReportRender{Kind: models.RenderDQReport, UploadID: "u-2", CreatedAt: base.Add(time.Hour)}))

	list, err := repo.ListByUpload("u-1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.RenderDQReport, list[0].Kind)
	assert.Equal(t, models.RenderCheckSuccess, list[1].Kind)
	assert.NotEqual(t, uuid.Nil, list[0].ID)
	assert.JSONEq(t, `{"rows_failed":5}`, string(list[0].Summary))

	all, err := repo.ListByUpload("u-1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "a non-positive limit falls back to the default page")

	none, err := repo.ListByUpload("u-404", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUploadWatchRepository_Save_Upserts(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	repo := NewUploadWatchRepository(db)
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(&models.UploadWatch{UploadID: "u-1", Status: models.StatusPending, Attempts: 1, StartedAt: started}))

	done := started.Add(3 * time.Minute)
	require.NoError(t, repo.Save(&models.UploadWatch{
		UploadID:    "u-1",
		Status:      models.StatusCompleted,
		Attempts:    4,
		LastError:   "portal unavailable",
		StartedAt:   started.Add(time.Hour),
		CompletedAt: &done,
	}))

	var count int64
	require.NoError(t, db.Model(&models.UploadWatch{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.Get("u-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 4, got.Attempts)
	assert.Equal(t, "portal unavailable", got.LastError)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))
	assert.True(t, started.Equal(got.StartedAt), "started_at is kept from the first save")
}

func TestUploadWatchRepository_ListPending(t *testing.T) {
	t.Parallel()

	repo := NewUploadWatchRepository(openDB(t))
	for id, status := range map[string]models.CheckStatus{
		"u-1": models.StatusPending,
		"u-2": models.StatusCompleted,
		"u-3": models.StatusPending,
		"u-4": models.StatusTimedOut,
	} {
		require.NoError(t, repo.Save(&models.UploadWatch{UploadID: id, Status: status}))
	}

	pending, err := repo.ListPending()
	require.NoError(t, err)

	ids := make([]string, 0, len(pending))
	for _, w := range pending {
		ids = append(ids, w.UploadID)
	}
	assert.ElementsMatch(t, []string{"u-1", "u-3"}, ids)

	_, err = repo.Get("u-404")
	assert.ErrorIs(t, err, ErrNotFound)
}
