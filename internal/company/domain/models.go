// Package domain contains persistence models for trading companies.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company is a trading company profile that issues invoices. The GSTIN
// carries the company's state code in its first two characters; the code
// is derived on demand, never stored separately.
type Company struct {
	ID               snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name             string        `gorm:"not null" json:"name"`
	Address          string        `gorm:"type:text" json:"address,omitempty"`
	GSTIN            string        `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	Phone            string        `gorm:"type:text" json:"phone,omitempty"`
	Email            string        `gorm:"type:text" json:"email,omitempty"`
	BankName         string        `gorm:"type:text" json:"bank_name,omitempty"`
	BankAccount      string        `gorm:"type:text" json:"bank_account,omitempty"`
	BankIFSC         string        `gorm:"column:bank_ifsc;type:text" json:"bank_ifsc,omitempty"`
	DefaultTaxTierID *snowflake.ID `gorm:"index" json:"default_tax_tier_id,omitempty"`
	CreatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }

// StateCode returns the two-character jurisdiction code embedded in the
// GSTIN, or "" when the GSTIN cannot carry one.
func (c *Company) StateCode() string {
	if len(c.GSTIN) < 2 {
		return ""
	}
	return c.GSTIN[:2]
}
