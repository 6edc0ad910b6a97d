package migration

import (
	"github.com/bwmarrin/snowflake"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"gorm.io/gorm"
)

// defaultTiers are the standard GST slabs seeded on an empty database.
var defaultTiers = []struct {
	label string
	total float64
}{
	{"GST 0%", 0},
	{"GST 5%", 5},
	{"GST 12%", 12},
	{"GST 18%", 18},
	{"GST 28%", 28},
}

// EnsureDefaultTaxTiers seeds the standard slabs when no tier exists yet.
// An installation that has configured its own tiers is left untouched.
func EnsureDefaultTaxTiers(conn *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := conn.Model(&taxtierdomain.TaxTier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tiers := make([]taxtierdomain.TaxTier, 0, len(defaultTiers))
	for _, t := range defaultTiers {
		tiers = append(tiers, taxtierdomain.TaxTier{
			ID:               genID.Generate(),
			Label:            t.label,
			TotalRatePercent: t.total,
			HalfRatePercent:  t.total / 2,
			Active:           true,
		})
	}
	return conn.Create(&tiers).Error
}
