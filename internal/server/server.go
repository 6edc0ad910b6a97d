package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/saralbooks/saral/internal/clock"
	"github.com/saralbooks/saral/internal/company"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	"github.com/saralbooks/saral/internal/config"
	"github.com/saralbooks/saral/internal/customer"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/internal/invoice"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/ledger"
	ledgerdomain "github.com/saralbooks/saral/internal/ledger/domain"
	"github.com/saralbooks/saral/internal/migration"
	"github.com/saralbooks/saral/internal/observability"
	obsmiddleware "github.com/saralbooks/saral/internal/observability/logger"
	obsmetrics "github.com/saralbooks/saral/internal/observability/metrics"
	obstracing "github.com/saralbooks/saral/internal/observability/tracing"
	"github.com/saralbooks/saral/internal/payment"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	"github.com/saralbooks/saral/internal/product"
	productdomain "github.com/saralbooks/saral/internal/product/domain"
	"github.com/saralbooks/saral/internal/providers/pdf"
	"github.com/saralbooks/saral/internal/taxtier"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	company.Module,
	customer.Module,
	product.Module,
	taxtier.Module,
	invoice.Module,
	payment.Module,
	ledger.Module,
	pdf.Module,
	clock.Module,
	migration.Module,
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func registerRoutes(s *Server) {
	s.registerAPIRoutes()
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	genID       *snowflake.Node
	companySvc  companydomain.Service
	customerSvc customerdomain.Service
	productSvc  productdomain.Service
	taxTierSvc  taxtierdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
	ledgerSvc   ledgerdomain.Service
	pdf         pdf.Provider
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	CompanySvc  companydomain.Service
	CustomerSvc customerdomain.Service
	ProductSvc  productdomain.Service
	TaxTierSvc  taxtierdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
	LedgerSvc   ledgerdomain.Service
	PDF         pdf.Provider
	ObsMetrics  *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		genID:       p.GenID,
		companySvc:  p.CompanySvc,
		customerSvc: p.CustomerSvc,
		productSvc:  p.ProductSvc,
		taxTierSvc:  p.TaxTierSvc,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
		ledgerSvc:   p.LedgerSvc,
		pdf:         p.PDF,
		obsMetrics:  p.ObsMetrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Companies --------
	api.GET("/companies", s.ListCompanies)
	api.POST("/companies", s.CreateCompany)
	api.GET("/companies/:id", s.GetCompanyByID)
	api.PATCH("/companies/:id", s.UpdateCompany)
	api.DELETE("/companies/:id", s.DeleteCompany)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	// -------- Customer ledger --------
	api.GET("/customers/:id/ledger", s.GetLedgerStatement)
	api.GET("/customers/:id/ledger/csv", s.GetLedgerStatementCSV)
	api.GET("/customers/:id/ledger/pdf", s.GetLedgerStatementPDF)

	// -------- Categories --------
	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.CreateCategory)
	api.DELETE("/categories/:id", s.DeleteCategory)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	// -------- Tax tiers --------
	api.GET("/tax_tiers", s.ListTaxTiers)
	api.POST("/tax_tiers", s.CreateTaxTier)
	api.GET("/tax_tiers/:id", s.GetTaxTierByID)
	api.PATCH("/tax_tiers/:id", s.UpdateTaxTier)
	api.POST("/tax_tiers/:id/disable", s.DisableTaxTier)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/report/pdf", s.GetInvoiceReportPDF)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.GetInvoicePDF)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.PATCH("/payments/:id", s.UpdatePayment)
	api.DELETE("/payments/:id", s.DeletePayment)
}
