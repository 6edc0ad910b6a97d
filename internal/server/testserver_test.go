package server

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/saralbooks/saral/internal/clock"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	companyrepo "github.com/saralbooks/saral/internal/company/repository"
	companyservice "github.com/saralbooks/saral/internal/company/service"
	"github.com/saralbooks/saral/internal/config"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	customerrepo "github.com/saralbooks/saral/internal/customer/repository"
	customerservice "github.com/saralbooks/saral/internal/customer/service"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	invoicerepo "github.com/saralbooks/saral/internal/invoice/repository"
	invoiceservice "github.com/saralbooks/saral/internal/invoice/service"
	ledgerrepo "github.com/saralbooks/saral/internal/ledger/repository"
	ledgerservice "github.com/saralbooks/saral/internal/ledger/service"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	paymentrepo "github.com/saralbooks/saral/internal/payment/repository"
	paymentservice "github.com/saralbooks/saral/internal/payment/service"
	productdomain "github.com/saralbooks/saral/internal/product/domain"
	productrepo "github.com/saralbooks/saral/internal/product/repository"
	productservice "github.com/saralbooks/saral/internal/product/service"
	"github.com/saralbooks/saral/internal/providers/pdf"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	taxtierrepo "github.com/saralbooks/saral/internal/taxtier/repository"
	taxtierservice "github.com/saralbooks/saral/internal/taxtier/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestServer wires the full service stack over an in-memory sqlite
// database and registers the API routes on a bare engine.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&customerdomain.Customer{},
		&productdomain.Category{},
		&productdomain.Product{},
		&taxtierdomain.TaxTier{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&invoicedomain.InvoiceSequence{},
		&paymentdomain.Payment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	companySvc := companyservice.New(companyservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: companyrepo.Provide(),
	})
	customerSvc := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: customerrepo.Provide(),
	})
	productSvc := productservice.New(productservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: productrepo.Provide(),
	})
	tierSvc := taxtierservice.New(taxtierservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: taxtierrepo.Provide(),
	})
	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Clock:       fake,
		Repo:        invoicerepo.Provide(),
		CompanySvc:  companySvc,
		CustomerSvc: customerSvc,
		TierSvc:     tierSvc,
	})
	paymentSvc := paymentservice.New(paymentservice.Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Clock:       fake,
		Repo:        paymentrepo.Provide(),
		CustomerSvc: customerSvc,
		InvoiceSvc:  invoiceSvc,
	})
	ledgerSvc := ledgerservice.New(ledgerservice.Params{
		DB:          db,
		Log:         log,
		Clock:       fake,
		Repo:        ledgerrepo.Provide(),
		CustomerSvc: customerSvc,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         config.Config{AppName: "saral-test"},
		DB:          db,
		GenID:       node,
		CompanySvc:  companySvc,
		CustomerSvc: customerSvc,
		ProductSvc:  productSvc,
		TaxTierSvc:  tierSvc,
		InvoiceSvc:  invoiceSvc,
		PaymentSvc:  paymentSvc,
		LedgerSvc:   ledgerSvc,
		PDF:         pdf.New(),
	})
	srv.registerAPIRoutes()

	return srv
}
