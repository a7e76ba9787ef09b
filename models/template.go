package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteTemplate is a reusable line-item set a manager saves from the
// quote form and loads into new quotes.
type QuoteTemplate struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name  string    `gorm:"size:255;not null" json:"name"`
	Items ItemList  `gorm:"type:jsonb;default:'[]'" json:"items"`

	CreatedBy string    `gorm:"size:255;index" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for QuoteTemplate
func (QuoteTemplate) TableName() string {
	return "quote_templates"
}
