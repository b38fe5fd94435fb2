package Models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category levels. Main categories own a naming scheme, sub and sub-sub
// categories only refine what students tag their uploads with.
const (
	LevelMain   = 1
	LevelSub    = 2
	LevelSubSub = 3
)

// Naming scheme identifiers a main category can be bound to.
const (
	SchemeMobility = "mobility"
	SchemeRetail   = "retail"
	SchemeAgri     = "agri"
	SchemeDynamic  = "dynamic"
)

type Category struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null;index"`
	Level        int    `json:"level" gorm:"not null"`
	ParentID     *uint  `json:"parent_id" gorm:"index"`
	NamingScheme string `json:"naming_scheme"`
	NamingPrefix string `json:"naming_prefix"`
	DisplayOrder int    `json:"display_order"`
}

// Scheme returns the stored naming scheme identifier. Rows created before
// the column existed derive it from the category name.
func (c *Category) Scheme() string {
	if c.NamingScheme != "" {
		return c.NamingScheme
	}
	switch c.Name {
	case "Mobility":
		return SchemeMobility
	case "Retail":
		return SchemeRetail
	case "Agri":
		return SchemeAgri
	}
	return SchemeDynamic
}

// Prefix returns the naming prefix used by the fallback dynamic scheme:
// the configured prefix, or the first three letters of the name uppercased.
func (c *Category) Prefix() string {
	if c.NamingPrefix != "" {
		return c.NamingPrefix
	}
	name := c.Name
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}

// NamingField is one ordered field of a dynamic naming convention owned by
// a category. FieldOptions holds the dropdown choices for select fields.
type NamingField struct {
	gorm.Model
	CategoryID   uint           `json:"category_id" gorm:"not null;index"`
	FieldName    string         `json:"field_name" gorm:"not null"`
	FieldLabel   string         `json:"field_label" gorm:"not null"`
	FieldType    string         `json:"field_type" gorm:"default:'text'"`
	FieldOptions datatypes.JSON `json:"field_options"`
	IsRequired   bool           `json:"is_required" gorm:"default:true"`
	DisplayOrder int            `json:"display_order"`
	Placeholder  string         `json:"placeholder"`
	Separator    string         `json:"separator" gorm:"default:'_'"`
}
