package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is a catalog entry for the product introduction pages. The
// three area columns hold the link groups rendered as button rows:
// basic info links, demo credentials, and customer case links.
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	ProposalFile string    `gorm:"size:500" json:"proposalFile,omitempty"`

	// [{"buttonName": "...", "url": "..."}]
	BasicAreas datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"basicAreas"`
	// [{"buttonName": "...", "url": "...", "id": "...", "password": "..."}]
	DemoAreas datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"demoAreas"`
	// [{"customerName": "...", "url": "..."}]
	CaseAreas datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"caseAreas"`

	DisplayOrder int  `gorm:"default:0" json:"displayOrder"`
	IsActive     bool `gorm:"default:true" json:"isActive"`

	CreatedBy string    `gorm:"size:255" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
