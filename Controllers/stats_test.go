package Controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ImageVault/Models"
)

func statsTestApp(db *gorm.DB) *fiber.App {
	sc := NewStatsController(db)
	app := fiber.New()
	app.Use(asUser(testAdmin()))
	app.Get("/stats", sc.GetStats)
	app.Get("/stats/export", sc.ExportReport)
	return app
}

func seedImageWithStatus(t *testing.T, db *gorm.DB, taskID uint, status string) {
	t.Helper()
	require.NoError(t, db.Create(&Models.Image{
		TaskID:     taskID,
		StudentID:  2,
		Filename:   "img.jpg",
		CategoryID: 1,
		Status:     status,
		UploadedAt: time.Now(),
	}).Error)
}

func TestCollectStats(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Mobility")
	open := seedTask(t, db, category.ID, 10, Models.TaskOpen)
	inProgress := seedTask(t, db, category.ID, 10, Models.TaskInProgress)
	seedTask(t, db, category.ID, 10, Models.TaskCompleted)

	seedImageWithStatus(t, db, open.ID, Models.ImagePending)
	seedImageWithStatus(t, db, open.ID, Models.ImageApproved)
	seedImageWithStatus(t, db, inProgress.ID, Models.ImageApproved)
	seedImageWithStatus(t, db, inProgress.ID, Models.ImageRejected)

	stats, err := NewStatsController(db).Collect()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTasks)
	assert.Equal(t, int64(1), stats.OpenTasks)
	assert.Equal(t, int64(1), stats.InProgressTasks)
	assert.Equal(t, int64(1), stats.CompletedTasks)
	assert.Equal(t, int64(4), stats.TotalImages)
	assert.Equal(t, int64(1), stats.PendingImages)
	assert.Equal(t, int64(2), stats.ApprovedImages)
	assert.Equal(t, int64(1), stats.RejectedImages)
}

func TestCollectBreakdown(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Mobility")
	task := seedTask(t, db, category.ID, 10, Models.TaskInProgress)
	empty := seedTask(t, db, category.ID, 10, Models.TaskOpen)

	seedImageWithStatus(t, db, task.ID, Models.ImageApproved)
	seedImageWithStatus(t, db, task.ID, Models.ImageApproved)
	seedImageWithStatus(t, db, task.ID, Models.ImageRejected)

	breakdown, err := NewStatsController(db).CollectBreakdown()
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, task.ID, breakdown[0].TaskID)
	assert.Equal(t, int64(3), breakdown[0].Uploaded)
	assert.Equal(t, int64(2), breakdown[0].Approved)
	assert.Equal(t, int64(1), breakdown[0].Rejected)

	// Tasks without images still appear with zero counts.
	assert.Equal(t, empty.ID, breakdown[1].TaskID)
	assert.Equal(t, int64(0), breakdown[1].Uploaded)
}

func TestExportReport(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Mobility")
	seedTask(t, db, category.ID, 10, Models.TaskInProgress)

	app := statsTestApp(db)
	resp, err := app.Test(jsonRequest("GET", "/stats/export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}
