package Models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. completed and closed are terminal for uploads; a task
// never regresses from them automatically.
const (
	TaskOpen       = "open"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskClosed     = "closed"
)

// Task requests TotalImages approved images in one category. The counters
// are denormalized and updated with single-statement conditional SQL so
// concurrent reviews cannot lose updates; the reconciliation cron job
// recomputes them from image rows and flags divergence.
type Task struct {
	gorm.Model
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	CategoryID     uint       `json:"category_id" gorm:"not null;index"`
	TotalImages    int        `json:"total_images" gorm:"not null"`
	UploadedCount  int        `json:"uploaded_count" gorm:"default:0"`
	ApprovedCount  int        `json:"approved_count" gorm:"default:0"`
	RejectedCount  int        `json:"rejected_count" gorm:"default:0"`
	Status         string     `json:"status" gorm:"default:'open';index"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	FinalReviewAt  *time.Time `json:"final_review_date"`
	CreatedBy      uint       `json:"created_by"`

	Requirements []TaskRequirement `json:"requirements,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	// Joined for listings, not stored
	CategoryName  string `json:"category_name,omitempty" gorm:"->;-:migration"`
	NamingPrefix  string `json:"naming_prefix,omitempty" gorm:"->;-:migration"`
	CreatedByName string `json:"created_by_name,omitempty" gorm:"->;-:migration"`
}

// AcceptsUploads reports whether the task can still take a batch, compared
// at day granularity against the upload deadline.
func (t *Task) AcceptsUploads(now time.Time) bool {
	if t.Status == TaskCompleted || t.Status == TaskClosed {
		return false
	}
	if t.EndDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		deadline := time.Date(t.EndDate.Year(), t.EndDate.Month(), t.EndDate.Day(), 0, 0, 0, 0, now.Location())
		if today.After(deadline) {
			return false
		}
	}
	return true
}

// TaskRequirement pins a task to specific subcategory choices.
type TaskRequirement struct {
	gorm.Model
	TaskID        uint  `json:"task_id" gorm:"not null;index"`
	SubcategoryID uint  `json:"subcategory_id" gorm:"not null"`
	SubSubID      *uint `json:"subsub_category_id"`

	SubcategoryName string `json:"subcategory_name,omitempty" gorm:"->;-:migration"`
	SubSubName      string `json:"subsub_category_name,omitempty" gorm:"->;-:migration"`
}
