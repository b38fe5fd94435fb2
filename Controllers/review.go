package Controllers

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/Vendor"
	"ImageVault/middleware"
)

type ReviewController struct {
	DB         *gorm.DB
	Vendor     *Vendor.Client
	UploadsDir string
}

func NewReviewController(db *gorm.DB, vendor *Vendor.Client, uploadsDir string) *ReviewController {
	return &ReviewController{DB: db, Vendor: vendor, UploadsDir: uploadsDir}
}

type ReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// Approve moves an image to approved, bumps the task's approved counter
// and hands the asset to the vendor. Approving the same image again
// increments the counter again; the UI disables the button, the server
// does not deduplicate.
//
// The vendor hand-off runs after the approval is durable. Its failure is
// reported as a warning next to the successful approval, never as a
// rollback.
func (rc *ReviewController) Approve(c *fiber.Ctx) error {
	var image Models.Image
	if err := rc.DB.First(&image, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Image not found"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user := middleware.CurrentUser(c)
	now := time.Now()

	err := rc.DB.Model(&Models.Image{}).Where("id = ?", image.ID).Updates(map[string]interface{}{
		"status":      Models.ImageApproved,
		"approved_at": now,
		"approved_by": user.ID,
		"rejected_at": nil,
		"rejected_by": nil,
		"admin_notes": strings.TrimSpace(req.AdminNotes),
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Approve failed"})
	}

	// One conditional statement: the increment and the derived status
	// must not be split into a read-then-write.
	err = rc.DB.Model(&Models.Task{}).Where("id = ?", image.TaskID).Updates(map[string]interface{}{
		"approved_count": gorm.Expr("approved_count + 1"),
		"status": gorm.Expr("CASE WHEN approved_count + 1 >= total_images THEN ? ELSE status END",
			Models.TaskCompleted),
	}).Error
	if err != nil {
		log.Printf("TASK APPROVED COUNT UPDATE ERROR: %v", err)
	}

	response := fiber.Map{"message": "Image approved"}

	if rc.Vendor != nil {
		filePath := filepath.Join(rc.UploadsDir, image.Filename)
		if err := rc.Vendor.UploadApprovedImage(filePath, image.Filename, image.MimeType); err != nil {
			log.Printf("Vendor upload failed for image %d: %v", image.ID, err)
			response["vendor_upload"] = "failed: " + err.Error()
		} else {
			response["vendor_upload"] = "ok"
		}
	}

	return c.JSON(response)
}

// Reject moves an image to rejected. The reason is mandatory; an empty or
// whitespace-only note fails before any state change.
func (rc *ReviewController) Reject(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if strings.TrimSpace(req.AdminNotes) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Description is required for rejection",
		})
	}

	var image Models.Image
	if err := rc.DB.First(&image, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Image not found"})
	}

	user := middleware.CurrentUser(c)
	now := time.Now()

	err := rc.DB.Model(&Models.Image{}).Where("id = ?", image.ID).Updates(map[string]interface{}{
		"status":      Models.ImageRejected,
		"rejected_at": now,
		"rejected_by": user.ID,
		"approved_at": nil,
		"approved_by": nil,
		"admin_notes": strings.TrimSpace(req.AdminNotes),
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Reject failed"})
	}

	// Rejection never changes task status; only the counter moves.
	err = rc.DB.Model(&Models.Task{}).Where("id = ?", image.TaskID).
		Update("rejected_count", gorm.Expr("rejected_count + 1")).Error
	if err != nil {
		log.Printf("TASK REJECTED COUNT UPDATE ERROR: %v", err)
	}

	return c.JSON(fiber.Map{"message": "Image rejected"})
}
