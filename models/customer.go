package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an address-book record. Quotes embed a CustomerInfo
// snapshot instead of referencing this table, so editing a customer
// never rewrites issued quotes.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyName   string    `gorm:"size:255;not null;index" json:"companyName"`
	ContactPerson string    `gorm:"size:100" json:"contactPerson,omitempty"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	Phone         string    `gorm:"size:50" json:"phone,omitempty"`
	Address       string    `gorm:"size:500" json:"address,omitempty"`

	CreatedBy string    `gorm:"size:255" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
