package Models

import (
	"gorm.io/gorm"
)

// Permission levels used by middleware.Verify.
const (
	PermissionStudent = 1
	PermissionAdmin   = 3
)

type User struct {
	gorm.Model
	Username   string `json:"username" gorm:"uniqueIndex;not null"`
	Password   []byte `json:"-"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Permission int    `json:"permission"`
}

func (u *User) IsAdmin() bool {
	return u.Permission >= PermissionAdmin
}
