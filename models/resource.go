package models

import (
	"time"

	"github.com/google/uuid"
)

// Resource library categories, fixed set from the register form.
var ResourceCategories = []string{
	"계약서",
	"시장조사 리포트",
	"영업정책",
	"보고서",
	"업무 매뉴얼",
	"제안서&브로슈어",
	"기타",
}

// IsResourceCategory reports whether c is one of the fixed categories.
func IsResourceCategory(c string) bool {
	for _, known := range ResourceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Resource is one entry in the shared sales resource library: a named
// document with an uploaded file or an external link.
type Resource struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:100;index" json:"category,omitempty"`

	FileName   string `gorm:"size:255" json:"fileName,omitempty"`
	FileURL    string `gorm:"size:500" json:"fileUrl,omitempty"`
	StoredName string `gorm:"size:500" json:"-"`

	CreatedBy string    `gorm:"size:255" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Resource
func (Resource) TableName() string {
	return "resources"
}
