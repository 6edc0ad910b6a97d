// Package domain holds the product catalog: categories and the goods
// or services billed on invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Category struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

// Product is a catalog item. UnitRate is the default sale rate in paise;
// invoice lines may override it at billing time.
type Product struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	CategoryID  *snowflake.ID     `gorm:"index" json:"category_id,omitempty"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	HSNCode     string            `gorm:"column:hsn_code;type:text" json:"hsn_code"`
	UOM         string            `gorm:"column:uom;type:text" json:"uom"`
	UnitRate    int64             `gorm:"not null;default:0" json:"unit_rate"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Active      bool              `gorm:"not null;default:true" json:"active"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
