// Package domain contains the GST rate master.
package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/money"
)

// halfRateTolerance absorbs decimal noise when administrators key the two
// half rates by hand.
const halfRateTolerance = 0.001

// TaxTier is one slab of the GST rate master (0, 5, 12, 18, 28, ...).
// TotalRatePercent applies as IGST on interstate and export invoices;
// HalfRatePercent applies twice (SGST + CGST) on intrastate invoices.
// Tiers referenced by invoices are disabled, never deleted.
type TaxTier struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	Label            string       `gorm:"type:text;not null" json:"label"`
	TotalRatePercent float64      `gorm:"type:numeric(6,3);not null" json:"total_rate_percent"`
	HalfRatePercent  float64      `gorm:"type:numeric(6,3);not null" json:"half_rate_percent"`
	Active           bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TaxTier) TableName() string { return "tax_tiers" }

func (t *TaxTier) Validate() error {
	if t.TotalRatePercent < 0 || t.TotalRatePercent > 100 {
		return ErrInvalidRate
	}
	if math.Abs(t.HalfRatePercent*2-t.TotalRatePercent) > halfRateTolerance {
		return ErrHalfRateMismatch
	}
	return nil
}

// Rate returns the total rate in basis points for tax computation.
func (t *TaxTier) Rate() money.BasisPoints {
	return money.RateFromPercent(t.TotalRatePercent)
}
