package migration

import (
	"github.com/bwmarrin/snowflake"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	"github.com/saralbooks/saral/internal/config"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	productdomain "github.com/saralbooks/saral/internal/product/domain"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite installs derive the schema from the models
			if err := conn.AutoMigrate(
				&companydomain.Company{},
				&customerdomain.Customer{},
				&productdomain.Category{},
				&productdomain.Product{},
				&taxtierdomain.TaxTier{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
				&invoicedomain.InvoiceSequence{},
				&paymentdomain.Payment{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedTaxTiers {
			return EnsureDefaultTaxTiers(conn, genID)
		}
		return nil
	}),
)
