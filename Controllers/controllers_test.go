package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ImageVault/Models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	return db
}

// asUser injects an authenticated user the way the jwt middleware does.
func asUser(user Models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	}
}

func testAdmin() Models.User {
	return Models.User{
		Model:      gorm.Model{ID: 1},
		Username:   "admin",
		FullName:   "Admin User",
		Permission: Models.PermissionAdmin,
	}
}

func testStudent() Models.User {
	return Models.User{
		Model:      gorm.Model{ID: 2},
		Username:   "student",
		FullName:   "Student User",
		Permission: Models.PermissionStudent,
	}
}

func seedCategory(t *testing.T, db *gorm.DB, name string) Models.Category {
	t.Helper()
	category := Models.Category{Name: name, Level: Models.LevelMain}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedTask(t *testing.T, db *gorm.DB, categoryID uint, totalImages int, status string) Models.Task {
	t.Helper()
	task := Models.Task{
		Title:       "Test Task",
		CategoryID:  categoryID,
		TotalImages: totalImages,
		Status:      status,
		CreatedBy:   1,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func seedImage(t *testing.T, db *gorm.DB, taskID, categoryID uint) Models.Image {
	t.Helper()
	image := Models.Image{
		TaskID:          taskID,
		StudentID:       2,
		Filename:        "MOB_BLR_FC_20260201_F001.jpg",
		RenamedFilename: "MOB_BLR_FC_20260201_F001.jpg",
		CategoryID:      categoryID,
		Status:          Models.ImagePending,
		UploadedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&image).Error)
	return image
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		encoded, _ := json.Marshal(payload)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeJSONList(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

// multipartBatch builds a student upload request: n files plus the task_id
// and naming_meta form values.
func multipartBatch(t *testing.T, taskID string, namingMeta string, fileNames []string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	require.NoError(t, writer.WriteField("task_id", taskID))
	if namingMeta != "" {
		require.NoError(t, writer.WriteField("naming_meta", namingMeta))
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
