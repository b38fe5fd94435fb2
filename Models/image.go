package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Image review statuses.
const (
	ImagePending  = "pending"
	ImageApproved = "approved"
	ImageRejected = "rejected"
)

// Image is one uploaded asset bound to a task. NamingMetadata records the
// fields the canonical filename was derived from plus the resolved sequence
// index; it is written once at upload time and never touched again, even
// when collision handling renames the file afterwards.
type Image struct {
	gorm.Model
	TaskID           uint           `json:"task_id" gorm:"not null;index"`
	StudentID        uint           `json:"student_id" gorm:"not null;index"`
	Filename         string         `json:"filename" gorm:"not null"`
	OriginalFilename string         `json:"original_filename"`
	RenamedFilename  string         `json:"renamed_filename"`
	FileSize         int64          `json:"file_size"`
	MimeType         string         `json:"mime_type"`
	CategoryID       uint           `json:"main_category_id" gorm:"index"`
	Status           string         `json:"status" gorm:"default:'pending';index"`
	UploadedAt       time.Time      `json:"uploaded_at"`
	ApprovedAt       *time.Time     `json:"approved_at"`
	ApprovedBy       *uint          `json:"approved_by"`
	RejectedAt       *time.Time     `json:"rejected_at"`
	RejectedBy       *uint          `json:"rejected_by"`
	AdminNotes       string         `json:"admin_notes"`
	NamingMetadata   datatypes.JSON `json:"naming_metadata"`

	// Joined for listings, not stored
	StudentName  string `json:"studentName,omitempty" gorm:"->;-:migration"`
	CategoryName string `json:"category_name,omitempty" gorm:"->;-:migration"`
	TaskTitle    string `json:"task_title,omitempty" gorm:"->;-:migration"`
}
