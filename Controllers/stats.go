package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"ImageVault/Config"
	"ImageVault/Models"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// Stats is the aggregate dashboard snapshot.
type Stats struct {
	TotalTasks      int64 `json:"total_tasks"`
	OpenTasks       int64 `json:"open_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	TotalImages     int64 `json:"total_images"`
	PendingImages   int64 `json:"pending_images"`
	ApprovedImages  int64 `json:"approved_images"`
	RejectedImages  int64 `json:"rejected_images"`
}

// TaskBreakdown is the per-task slice of the report.
type TaskBreakdown struct {
	TaskID   uint   `json:"task_id"`
	Title    string `json:"title"`
	Uploaded int64  `json:"uploaded"`
	Approved int64  `json:"approved"`
	Rejected int64  `json:"rejected"`
}

// Collect computes the aggregate stats from the image rows (ground truth),
// not from the denormalized task counters.
func (sc *StatsController) Collect() (Stats, error) {
	var stats Stats

	type count struct {
		query *gorm.DB
		dest  *int64
	}
	counts := []count{
		{sc.DB.Model(&Models.Task{}), &stats.TotalTasks},
		{sc.DB.Model(&Models.Task{}).Where("status = ?", Models.TaskOpen), &stats.OpenTasks},
		{sc.DB.Model(&Models.Task{}).Where("status = ?", Models.TaskInProgress), &stats.InProgressTasks},
		{sc.DB.Model(&Models.Task{}).Where("status = ?", Models.TaskCompleted), &stats.CompletedTasks},
		{sc.DB.Model(&Models.Image{}), &stats.TotalImages},
		{sc.DB.Model(&Models.Image{}).Where("status = ?", Models.ImagePending), &stats.PendingImages},
		{sc.DB.Model(&Models.Image{}).Where("status = ?", Models.ImageApproved), &stats.ApprovedImages},
		{sc.DB.Model(&Models.Image{}).Where("status = ?", Models.ImageRejected), &stats.RejectedImages},
	}
	for _, item := range counts {
		if err := item.query.Count(item.dest).Error; err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// CollectBreakdown computes per-task upload/approval counts from image
// rows.
func (sc *StatsController) CollectBreakdown() ([]TaskBreakdown, error) {
	var breakdown []TaskBreakdown
	err := sc.DB.Model(&Models.Task{}).
		Select(`tasks.id AS task_id, tasks.title,
			COUNT(images.id) AS uploaded,
			SUM(CASE WHEN images.status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN images.status = 'rejected' THEN 1 ELSE 0 END) AS rejected`).
		Joins("LEFT JOIN images ON images.task_id = tasks.id AND images.deleted_at IS NULL").
		Group("tasks.id, tasks.title").
		Order("tasks.id").
		Scan(&breakdown).Error
	return breakdown, err
}

// GetStats serves the dashboard counters.
func (sc *StatsController) GetStats(c *fiber.Ctx) error {
	stats, err := sc.Collect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch stats"})
	}
	return c.JSON(stats)
}

// ExportReport streams an Excel workbook with the summary, the payout
// total and the per-task breakdown.
func (sc *StatsController) ExportReport(c *fiber.Ctx) error {
	stats, err := sc.Collect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch stats"})
	}
	breakdown, err := sc.CollectBreakdown()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch task breakdown"})
	}

	ratePerImage := Config.GetenvInt("RATE_PER_IMAGE", 4)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Image Report"},
		{"Generated on", time.Now().Format("2006-01-02 15:04:05")},
		{},
		{"Summary"},
		{"Total Tasks", stats.TotalTasks},
		{"Open Tasks", stats.OpenTasks},
		{"In Progress Tasks", stats.InProgressTasks},
		{"Completed Tasks", stats.CompletedTasks},
		{"Total Images Uploaded", stats.TotalImages},
		{"Pending Images", stats.PendingImages},
		{"Approved Images", stats.ApprovedImages},
		{"Rejected Images", stats.RejectedImages},
		{},
		{"Financial Summary"},
		{"Rate per Approved Image", ratePerImage},
		{"Total Amount", stats.ApprovedImages * int64(ratePerImage)},
		{},
		{"Task", "Uploaded", "Approved", "Rejected"},
	}
	for _, task := range breakdown {
		rows = append(rows, []interface{}{task.Title, task.Uploaded, task.Approved, task.Rejected})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build report"})
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build report"})
	}

	filename := fmt.Sprintf("image_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(buffer.Bytes())
}
