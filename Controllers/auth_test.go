package Controllers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/middleware"
)

func authTestApp(db *gorm.DB) *fiber.App {
	ac := NewAuthController(db)
	app := fiber.New()
	app.Post("/login", ac.Login)
	app.Post("/register", ac.Register)
	app.Get("/validate-token", middleware.Verify(Models.PermissionStudent), ac.ValidateToken)
	app.Get("/admin-only", middleware.Verify(Models.PermissionAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})
	return app
}

func seedCredentials(t *testing.T, db *gorm.DB, username, password string, permission int) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&Models.User{
		Username:   username,
		Password:   hashed,
		Permission: permission,
	}).Error)
}

func jwtCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			return cookie
		}
	}
	t.Fatal("no jwt cookie in response")
	return nil
}

func TestLoginAndValidate(t *testing.T) {
	db := setupTestDB(t)
	Models.DB = db
	seedCredentials(t, db, "student", "secret123", Models.PermissionStudent)
	app := authTestApp(db)

	resp, err := app.Test(jsonRequest("POST", "/login", map[string]string{
		"username": "student", "password": "secret123",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := jwtCookie(t, resp)
	assert.True(t, cookie.HttpOnly)

	// The cookie authenticates follow-up requests.
	req := jsonRequest("GET", "/validate-token", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Student permission does not reach admin routes.
	req = jsonRequest("GET", "/admin-only", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	Models.DB = db
	seedCredentials(t, db, "student", "secret123", Models.PermissionStudent)
	app := authTestApp(db)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"wrong password", map[string]string{"username": "student", "password": "nope"}},
		{"unknown user", map[string]string{"username": "ghost", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/login", tt.payload), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestVerifyRejectsMissingCookie(t *testing.T) {
	db := setupTestDB(t)
	Models.DB = db
	app := authTestApp(db)

	resp, err := app.Test(jsonRequest("GET", "/validate-token", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	app := authTestApp(db)

	resp, err := app.Test(jsonRequest("POST", "/register", map[string]string{
		"username": "newstudent", "password": "secret123", "full_name": "New Student",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user Models.User
	require.NoError(t, db.Where("username = ?", "newstudent").First(&user).Error)
	assert.Equal(t, Models.PermissionStudent, user.Permission)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.Password, []byte("secret123")))

	t.Run("duplicate username", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/register", map[string]string{
			"username": "newstudent", "password": "other",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
