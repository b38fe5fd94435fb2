package Controllers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/Naming"
)

type CategoryController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db, validate: validator.New()}
}

// GetCategories lists all categories ordered by level and display order.
func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	var categories []Models.Category
	if err := cc.DB.Order("level, display_order").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch categories",
		})
	}
	return c.JSON(categories)
}

// GetMainCategories lists level-1 categories.
func (cc *CategoryController) GetMainCategories(c *fiber.Ctx) error {
	var categories []Models.Category
	if err := cc.DB.Where("level = ?", Models.LevelMain).Order("display_order").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch categories",
		})
	}
	return c.JSON(categories)
}

// GetChildren lists the direct children of a category.
func (cc *CategoryController) GetChildren(c *fiber.Ctx) error {
	parentID, err := strconv.Atoi(c.Params("parentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid parent ID"})
	}

	var categories []Models.Category
	if err := cc.DB.Where("parent_id = ?", parentID).Order("display_order").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch categories",
		})
	}
	return c.JSON(categories)
}

type hierarchySubSub struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type hierarchySub struct {
	ID     uint              `json:"id"`
	Name   string            `json:"name"`
	SubSub []hierarchySubSub `json:"subSubCategories"`
}

type hierarchyMain struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	NamingPrefix string         `json:"namingPrefix"`
	Sub          []hierarchySub `json:"subCategories"`
}

// GetHierarchy returns the full three-level category tree.
func (cc *CategoryController) GetHierarchy(c *fiber.Ctx) error {
	var categories []Models.Category
	if err := cc.DB.Order("level, display_order").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch categories",
		})
	}

	mains := []hierarchyMain{}
	mainIndex := map[uint]int{}
	subIndex := map[uint][2]int{}

	for _, cat := range categories {
		if cat.Level == Models.LevelMain {
			mainIndex[cat.ID] = len(mains)
			mains = append(mains, hierarchyMain{
				ID:           cat.ID,
				Name:         cat.Name,
				NamingPrefix: cat.NamingPrefix,
				Sub:          []hierarchySub{},
			})
		}
	}
	for _, cat := range categories {
		if cat.Level == Models.LevelSub && cat.ParentID != nil {
			if mi, ok := mainIndex[*cat.ParentID]; ok {
				subIndex[cat.ID] = [2]int{mi, len(mains[mi].Sub)}
				mains[mi].Sub = append(mains[mi].Sub, hierarchySub{
					ID:     cat.ID,
					Name:   cat.Name,
					SubSub: []hierarchySubSub{},
				})
			}
		}
	}
	for _, cat := range categories {
		if cat.Level == Models.LevelSubSub && cat.ParentID != nil {
			if pos, ok := subIndex[*cat.ParentID]; ok {
				sub := &mains[pos[0]].Sub[pos[1]]
				sub.SubSub = append(sub.SubSub, hierarchySubSub{ID: cat.ID, Name: cat.Name})
			}
		}
	}

	return c.JSON(mains)
}

type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required"`
	Level        int    `json:"level" validate:"required,oneof=1 2 3"`
	ParentID     *uint  `json:"parent_id"`
	NamingPrefix string `json:"naming_prefix"`
	NamingScheme string `json:"naming_scheme" validate:"omitempty,oneof=mobility retail agri dynamic"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCategory adds a category at any level.
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := cc.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "name and level (1-3) are required",
			"error":   err.Error(),
		})
	}
	if req.Level > Models.LevelMain && req.ParentID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Parent ID required for level " + strconv.Itoa(req.Level),
		})
	}

	category := Models.Category{
		Name:         req.Name,
		Level:        req.Level,
		ParentID:     req.ParentID,
		NamingPrefix: req.NamingPrefix,
		NamingScheme: req.NamingScheme,
		DisplayOrder: req.DisplayOrder,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Category add failed",
		})
	}
	return c.JSON(fiber.Map{"message": "Category added successfully", "id": category.ID})
}

// DeleteCategory removes a category.
func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	if err := cc.DB.Delete(&Models.Category{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete category"})
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetNamingConvention returns the help text for the fixed scheme bound to
// a category.
func (cc *CategoryController) GetNamingConvention(c *fiber.Ctx) error {
	var category Models.Category
	if err := cc.DB.First(&category, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found"})
	}

	help := Naming.HelpFor(category.Scheme())
	if help == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Naming convention not found for this category",
		})
	}
	return c.JSON(help)
}

// GetNamingFields lists the dynamic naming fields of a category in display
// order.
func (cc *CategoryController) GetNamingFields(c *fiber.Ctx) error {
	var fields []Models.NamingField
	if err := cc.DB.Where("category_id = ?", c.Params("categoryId")).Order("display_order").Find(&fields).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch naming fields",
		})
	}
	return c.JSON(fields)
}

type NamingFieldRequest struct {
	CategoryID   uint           `json:"category_id" validate:"required"`
	FieldName    string         `json:"field_name" validate:"required"`
	FieldLabel   string         `json:"field_label" validate:"required"`
	FieldType    string         `json:"field_type"`
	FieldOptions datatypes.JSON `json:"field_options"`
	IsRequired   *bool          `json:"is_required"`
	DisplayOrder int            `json:"display_order"`
	Placeholder  string         `json:"placeholder"`
	Separator    string         `json:"separator"`
}

// CreateNamingField adds one dynamic naming field.
func (cc *CategoryController) CreateNamingField(c *fiber.Ctx) error {
	var req NamingFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := cc.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "category_id, field_name, and field_label are required",
		})
	}

	field := Models.NamingField{
		CategoryID:   req.CategoryID,
		FieldName:    req.FieldName,
		FieldLabel:   req.FieldLabel,
		FieldType:    defaultString(req.FieldType, "text"),
		FieldOptions: req.FieldOptions,
		IsRequired:   req.IsRequired == nil || *req.IsRequired,
		DisplayOrder: req.DisplayOrder,
		Placeholder:  req.Placeholder,
		Separator:    defaultString(req.Separator, "_"),
	}
	if err := cc.DB.Create(&field).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add naming field"})
	}
	return c.JSON(fiber.Map{"message": "Naming field added", "id": field.ID})
}

// UpdateNamingField replaces one dynamic naming field.
func (cc *CategoryController) UpdateNamingField(c *fiber.Ctx) error {
	var field Models.NamingField
	if err := cc.DB.First(&field, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Naming field not found"})
	}

	var req NamingFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	field.FieldName = req.FieldName
	field.FieldLabel = req.FieldLabel
	field.FieldType = defaultString(req.FieldType, "text")
	field.FieldOptions = req.FieldOptions
	field.IsRequired = req.IsRequired == nil || *req.IsRequired
	field.DisplayOrder = req.DisplayOrder
	field.Placeholder = req.Placeholder
	field.Separator = defaultString(req.Separator, "_")

	if err := cc.DB.Save(&field).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update naming field"})
	}
	return c.JSON(fiber.Map{"message": "Naming field updated"})
}

// DeleteNamingField removes one dynamic naming field.
func (cc *CategoryController) DeleteNamingField(c *fiber.Ctx) error {
	if err := cc.DB.Delete(&Models.NamingField{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete naming field"})
	}
	return c.JSON(fiber.Map{"message": "Naming field deleted"})
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
