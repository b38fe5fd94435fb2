package Controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/Naming"
	"ImageVault/middleware"
)

// Batch limits enforced on student uploads.
const (
	MaxBatchFiles = 50
	MaxFileSize   = 50 * 1024 * 1024
)

type UploadController struct {
	DB         *gorm.DB
	UploadsDir string
}

func NewUploadController(db *gorm.DB, uploadsDir string) *UploadController {
	return &UploadController{DB: db, UploadsDir: uploadsDir}
}

// UploadBatch ingests one multi-file upload against one task: checks task
// eligibility, assigns sequence indices continuing from the task's
// cumulative image count, derives each canonical filename, renames the
// staged files and persists all image rows in one insert.
//
// The image insert and the task counter update are separate statements on
// purpose; a counter failure after a committed insert is logged and left
// to the reconciliation job.
func (uc *UploadController) UploadBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid multipart form"})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No files uploaded"})
	}
	if len(files) > MaxBatchFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("A batch may contain at most %d files", MaxBatchFiles),
		})
	}
	for _, file := range files {
		if file.Size > MaxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("File %s exceeds the 50MB limit", file.Filename),
			})
		}
	}

	taskID, err := strconv.Atoi(c.FormValue("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "task_id is required"})
	}

	meta, err := parseNamingMeta(c.FormValue("naming_meta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid naming_meta JSON"})
	}

	var task Models.Task
	if err := uc.DB.First(&task, taskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}
	var category Models.Category
	if err := uc.DB.First(&category, task.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task category not found"})
	}

	if task.Status == Models.TaskCompleted || task.Status == Models.TaskClosed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Task is no longer accepting uploads"})
	}
	if !task.AcceptsUploads(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Upload deadline has passed. This task is no longer accepting images.",
		})
	}

	// Uploads past total_images are allowed: the target caps approved
	// images, not uploads.

	scheme := Naming.SchemeFor(category.Scheme(), category.Prefix(), uc.namingFields(category.ID))

	// Count-then-insert is racy across concurrent batches to the same
	// task; duplicate sequence indices are accepted and caught by the
	// collision resolver on disk.
	var priorCount int64
	if err := uc.DB.Model(&Models.Image{}).Where("task_id = ?", taskID).Count(&priorCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	user := middleware.CurrentUser(c)
	now := time.Now()
	images := make([]Models.Image, 0, len(files))
	renamed := make([]string, 0, len(files))

	for i, file := range files {
		index := int(priorCount) + i + 1

		ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
		if ext == "" {
			ext = "jpg"
		}

		fileMeta := Naming.Metadata{}
		for key, value := range meta {
			fileMeta[key] = value
		}
		fileMeta["ext"] = ext

		proposed := scheme.Generate(fileMeta, index)

		stagedName := fmt.Sprintf("%d-%09d.%s", time.Now().UnixMilli(), rand.Intn(1e9), ext)
		stagedPath := filepath.Join(uc.UploadsDir, stagedName)
		if err := c.SaveFile(file, stagedPath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to store uploaded file"})
		}

		// A rename failure is isolated to this file: the row still
		// persists and the asset keeps its staged name on disk.
		finalName, renameErr := Naming.Rename(stagedPath, uc.UploadsDir, proposed)
		if renameErr != nil {
			log.Printf("Rename error: %v", renameErr)
		}

		record := map[string]interface{}{}
		for key, value := range meta {
			record[key] = value
		}
		record["generatedName"] = finalName
		record["index"] = index
		recordJSON, _ := json.Marshal(record)

		images = append(images, Models.Image{
			TaskID:           task.ID,
			StudentID:        user.ID,
			Filename:         finalName,
			OriginalFilename: file.Filename,
			RenamedFilename:  finalName,
			FileSize:         file.Size,
			MimeType:         file.Header.Get("Content-Type"),
			CategoryID:       task.CategoryID,
			Status:           Models.ImagePending,
			UploadedAt:       now,
			NamingMetadata:   datatypes.JSON(recordJSON),
		})
		renamed = append(renamed, finalName)
	}

	if err := uc.DB.Create(&images).Error; err != nil {
		log.Printf("IMAGE INSERT ERROR: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save images"})
	}

	// Single conditional statement so a concurrent approval cannot be
	// overwritten by a stale status read.
	err = uc.DB.Model(&Models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
		"uploaded_count": gorm.Expr("uploaded_count + ?", len(files)),
		"status": gorm.Expr("CASE WHEN approved_count >= total_images THEN ? ELSE ? END",
			Models.TaskCompleted, Models.TaskInProgress),
	}).Error
	if err != nil {
		log.Printf("TASK COUNT UPDATE ERROR: %v", err)
	}

	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("%d image(s) uploaded and renamed successfully", len(files)),
		"count":        len(files),
		"renamedFiles": renamed,
	})
}

// GetStudentImages lists the logged-in student's uploads.
func (uc *UploadController) GetStudentImages(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var images []Models.Image
	err := uc.DB.Model(&Models.Image{}).
		Select("images.*, categories.name AS category_name, tasks.title AS task_title").
		Joins("JOIN categories ON images.category_id = categories.id").
		Joins("LEFT JOIN tasks ON images.task_id = tasks.id").
		Where("images.student_id = ?", user.ID).
		Order("images.uploaded_at DESC").
		Scan(&images).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch images"})
	}
	return c.JSON(images)
}

func (uc *UploadController) namingFields(categoryID uint) []Naming.Field {
	var rows []Models.NamingField
	uc.DB.Where("category_id = ?", categoryID).Order("display_order").Find(&rows)

	fields := make([]Naming.Field, 0, len(rows))
	for _, row := range rows {
		fields = append(fields, Naming.Field{Name: row.FieldName, Placeholder: row.Placeholder})
	}
	return fields
}

// parseNamingMeta decodes the JSON metadata payload, flattening values to
// strings the way the name generators expect.
func parseNamingMeta(raw string) (Naming.Metadata, error) {
	meta := Naming.Metadata{}
	if raw == "" {
		return meta, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}
	for key, value := range decoded {
		switch typed := value.(type) {
		case string:
			meta[key] = typed
		case float64:
			meta[key] = strconv.FormatFloat(typed, 'f', -1, 64)
		case bool:
			meta[key] = strconv.FormatBool(typed)
		case nil:
			// skipped
		default:
			encoded, _ := json.Marshal(typed)
			meta[key] = string(encoded)
		}
	}
	return meta, nil
}
