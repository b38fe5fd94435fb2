package FiberConfig

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"ImageVault/Config"
	"ImageVault/Controllers"
	"ImageVault/Models"
	"ImageVault/Vendor"
	"ImageVault/email"
	"ImageVault/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, mailer *email.Sender, uploadsDir string) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	categoryController := Controllers.NewCategoryController(db)
	taskController := Controllers.NewTaskController(db, mailer)
	uploadController := Controllers.NewUploadController(db, uploadsDir)
	reviewController := Controllers.NewReviewController(db, Vendor.NewClient(), uploadsDir)
	imageController := Controllers.NewImageController(db)
	statsController := Controllers.NewStatsController(db)

	// API group
	api := app.Group("/api")

	// Auth routes
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)
	api.Get("/validate-token", middleware.Verify(Models.PermissionStudent), authController.ValidateToken)
	api.Post("/logout", authController.Logout)

	// Category routes
	categories := api.Group("/categories", middleware.Verify(Models.PermissionStudent))
	categories.Get("/", categoryController.GetCategories)
	categories.Get("/main", categoryController.GetMainCategories)
	categories.Get("/hierarchy", categoryController.GetHierarchy)
	categories.Get("/:parentId/children", categoryController.GetChildren)
	categories.Get("/:id/naming-convention", categoryController.GetNamingConvention)
	categories.Get("/:categoryId/naming-fields", categoryController.GetNamingFields)
	categories.Post("/", middleware.Verify(Models.PermissionAdmin), categoryController.CreateCategory)
	categories.Delete("/:id", middleware.Verify(Models.PermissionAdmin), categoryController.DeleteCategory)
	categories.Post("/naming-fields", middleware.Verify(Models.PermissionAdmin), categoryController.CreateNamingField)
	categories.Put("/naming-fields/:id", middleware.Verify(Models.PermissionAdmin), categoryController.UpdateNamingField)
	categories.Delete("/naming-fields/:id", middleware.Verify(Models.PermissionAdmin), categoryController.DeleteNamingField)

	// Task routes
	tasks := api.Group("/tasks", middleware.Verify(Models.PermissionStudent))
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Post("/", middleware.Verify(Models.PermissionAdmin), taskController.CreateTask)
	tasks.Put("/:id/status", middleware.Verify(Models.PermissionAdmin), taskController.UpdateTaskStatus)
	tasks.Delete("/:id", middleware.Verify(Models.PermissionAdmin), taskController.DeleteTask)

	// Student upload routes
	student := api.Group("/student", middleware.Verify(Models.PermissionStudent))
	student.Post("/upload", uploadController.UploadBatch)
	student.Get("/images", uploadController.GetStudentImages)

	// Admin review routes
	admin := api.Group("/admin", middleware.Verify(Models.PermissionAdmin))
	admin.Get("/images", imageController.GetImages)
	admin.Get("/images/:id", imageController.GetImage)
	admin.Put("/images/:id/approve", reviewController.Approve)
	admin.Put("/images/:id/reject", reviewController.Reject)
	admin.Get("/stats", statsController.GetStats)
	admin.Get("/stats/export", statsController.ExportReport)
}

func Serve(db *gorm.DB, mailer *email.Sender) {
	fmt.Println("Server Up...")
	uploadsDir := Config.Getenv("UPLOADS_DIR", "uploads")

	app := fiber.New(fiber.Config{
		// Batches carry up to 50 files of 50 MB each.
		BodyLimit: Controllers.MaxBatchFiles * Controllers.MaxFileSize,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     Config.Getenv("CORS_ORIGINS", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, db, mailer, uploadsDir)

	// Serve approved and pending images for the review UI.
	app.Static("/uploads", uploadsDir, fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	app.Listen(":" + Config.Getenv("PORT", "3001"))
}
