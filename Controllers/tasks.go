package Controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/email"
	"ImageVault/middleware"
)

type TaskController struct {
	DB       *gorm.DB
	Mailer   *email.Sender
	validate *validator.Validate
}

func NewTaskController(db *gorm.DB, mailer *email.Sender) *TaskController {
	return &TaskController{DB: db, Mailer: mailer, validate: validator.New()}
}

type TaskRequirementRequest struct {
	SubcategoryID uint  `json:"subcategory_id" validate:"required"`
	SubSubID      *uint `json:"subsub_category_id"`
}

type CreateTaskRequest struct {
	Title        string                   `json:"title" validate:"required"`
	Description  string                   `json:"description"`
	CategoryID   uint                     `json:"main_category_id" validate:"required"`
	TotalImages  int                      `json:"total_images" validate:"required,gt=0"`
	StartDate    *time.Time               `json:"start_date"`
	EndDate      *time.Time               `json:"end_date"`
	FinalReview  *time.Time               `json:"final_review_date"`
	Requirements []TaskRequirementRequest `json:"subcategory_requirements"`
}

// CreateTask creates a task and fires the notification email. The email is
// fire-and-forget: a send failure is logged, never surfaced.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := tc.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "title, main_category_id, and total_images are required",
		})
	}

	var category Models.Category
	if err := tc.DB.First(&category, req.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Category not found"})
	}

	user := middleware.CurrentUser(c)
	task := Models.Task{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		TotalImages:   req.TotalImages,
		Status:        Models.TaskOpen,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		FinalReviewAt: req.FinalReview,
		CreatedBy:     user.ID,
	}

	for _, requirement := range req.Requirements {
		task.Requirements = append(task.Requirements, Models.TaskRequirement{
			SubcategoryID: requirement.SubcategoryID,
			SubSubID:      requirement.SubSubID,
		})
	}

	if err := tc.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create task"})
	}

	if tc.Mailer != nil {
		go func() {
			if err := tc.Mailer.SendTaskCreated(email.TaskDetails{
				TaskID:       task.ID,
				Title:        task.Title,
				Description:  task.Description,
				CategoryName: category.Name,
				TotalImages:  task.TotalImages,
				CreatedBy:    user.Username,
			}); err != nil {
				log.Printf("Error sending task creation email: %v", err)
			}
		}()
	}

	return c.JSON(fiber.Map{"message": "Task created successfully", "taskId": task.ID})
}

// GetTasks lists tasks. Admins see everything, students only tasks still
// accepting work.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := tc.DB.Model(&Models.Task{}).
		Select("tasks.*, categories.name AS category_name, categories.naming_prefix, users.username AS created_by_name").
		Joins("JOIN categories ON tasks.category_id = categories.id").
		Joins("JOIN users ON tasks.created_by = users.id").
		Order("tasks.created_at DESC")

	if !user.IsAdmin() {
		query = query.Where("tasks.status IN ?", []string{Models.TaskOpen, Models.TaskInProgress})
	}

	var tasks []Models.Task
	if err := query.Scan(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch tasks"})
	}
	return c.JSON(tasks)
}

// GetTask returns one task with its subcategory requirements.
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	var task Models.Task
	err := tc.DB.Model(&Models.Task{}).
		Select("tasks.*, categories.name AS category_name, categories.naming_prefix").
		Joins("JOIN categories ON tasks.category_id = categories.id").
		Where("tasks.id = ?", c.Params("id")).
		Scan(&task).Error
	if err != nil || task.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}

	var requirements []Models.TaskRequirement
	tc.DB.Model(&Models.TaskRequirement{}).
		Select("task_requirements.*, sub.name AS subcategory_name, subsub.name AS sub_sub_name").
		Joins("JOIN categories sub ON task_requirements.subcategory_id = sub.id").
		Joins("LEFT JOIN categories subsub ON task_requirements.sub_sub_id = subsub.id").
		Where("task_requirements.task_id = ?", task.ID).
		Scan(&requirements)
	task.Requirements = requirements

	return c.JSON(task)
}

// UpdateTaskStatus sets the status by hand (admin override).
func (tc *TaskController) UpdateTaskStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	switch req.Status {
	case Models.TaskOpen, Models.TaskInProgress, Models.TaskCompleted, Models.TaskClosed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid status"})
	}

	result := tc.DB.Model(&Models.Task{}).Where("id = ?", c.Params("id")).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update task"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}
	return c.JSON(fiber.Map{"message": "Task status updated"})
}

// DeleteTask removes a task (admin-initiated; images cascade through the
// requirement constraint, image rows stay for audit).
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid task ID"})
	}
	if err := tc.DB.Delete(&Models.Task{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete task"})
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}
