package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ImageVault/Models"
)

type ImageController struct {
	DB *gorm.DB
}

func NewImageController(db *gorm.DB) *ImageController {
	return &ImageController{DB: db}
}

// GetImages lists every image for review, optionally filtered by task.
func (ic *ImageController) GetImages(c *fiber.Ctx) error {
	query := ic.DB.Model(&Models.Image{}).
		Select("images.*, users.username AS student_name, categories.name AS category_name, tasks.title AS task_title").
		Joins("JOIN users ON images.student_id = users.id").
		Joins("JOIN categories ON images.category_id = categories.id").
		Joins("LEFT JOIN tasks ON images.task_id = tasks.id").
		Order("images.uploaded_at DESC")

	if taskID := c.Query("task_id"); taskID != "" {
		query = query.Where("images.task_id = ?", taskID)
	}

	var images []Models.Image
	if err := query.Scan(&images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch images",
			"error":   err.Error(),
		})
	}
	return c.JSON(images)
}

// GetImage returns a single image row.
func (ic *ImageController) GetImage(c *fiber.Ctx) error {
	var image Models.Image
	if err := ic.DB.First(&image, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Image not found"})
	}
	return c.JSON(image)
}
