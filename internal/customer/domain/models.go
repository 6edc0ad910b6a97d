package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is a billed party. StateCode is the two-digit GST state code;
// nil or empty means the customer is outside the country and transactions
// classify as exports. OpeningBalance is the carried-in balance in paise
// from before the customer was onboarded here.
type Customer struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name           string            `gorm:"not null" json:"name"`
	BillingAddress string            `gorm:"type:text" json:"billing_address,omitempty"`
	StateCode      *string           `gorm:"column:state_code;type:text" json:"state_code,omitempty"`
	GSTNumber      *string           `gorm:"column:gst_number;type:text" json:"gst_number,omitempty"`
	Phone          string            `gorm:"type:text" json:"phone,omitempty"`
	Email          string            `gorm:"type:text" json:"email,omitempty"`
	TaxExempt      bool              `gorm:"not null;default:false" json:"tax_exempt"`
	OpeningBalance int64             `gorm:"not null;default:0" json:"opening_balance"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// EffectiveStateCode returns the state code or "" for export customers.
func (c *Customer) EffectiveStateCode() string {
	if c.StateCode == nil {
		return ""
	}
	return *c.StateCode
}
