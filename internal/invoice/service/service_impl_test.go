package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/saralbooks/saral/internal/clock"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	companyrepo "github.com/saralbooks/saral/internal/company/repository"
	companyservice "github.com/saralbooks/saral/internal/company/service"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	customerrepo "github.com/saralbooks/saral/internal/customer/repository"
	customerservice "github.com/saralbooks/saral/internal/customer/service"
	"github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/invoice/gst"
	"github.com/saralbooks/saral/internal/invoice/repository"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	taxtierrepo "github.com/saralbooks/saral/internal/taxtier/repository"
	taxtierservice "github.com/saralbooks/saral/internal/taxtier/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc      domain.Service
	company  companydomain.Service
	customer customerdomain.Service
	tier     taxtierdomain.Service
	clock    *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&customerdomain.Customer{},
		&taxtierdomain.TaxTier{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&domain.InvoiceSequence{},
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
	tierSvc := taxtierservice.New(taxtierservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake, Repo: taxtierrepo.Provide(),
	})

	svc := New(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Clock:       fake,
		Repo:        repository.Provide(),
		CompanySvc:  companySvc,
		CustomerSvc: customerSvc,
		TierSvc:     tierSvc,
	})

	return &fixture{
		svc:      svc,
		company:  companySvc,
		customer: customerSvc,
		tier:     tierSvc,
		clock:    fake,
	}
}

func (f *fixture) seed(t *testing.T, customerState string, exempt bool) (companydomain.Company, customerdomain.Customer, taxtierdomain.TaxTier) {
	t.Helper()
	ctx := context.Background()

	company, err := f.company.Create(ctx, companydomain.CreateCompanyRequest{
		Name:  "Suresh Enterprise",
		GSTIN: "24ABCDE1234F1Z5",
	})
	require.NoError(t, err)

	req := customerdomain.CreateCustomerRequest{
		Name:      "Mahavir Traders",
		TaxExempt: exempt,
	}
	if customerState != "" {
		req.StateCode = &customerState
	}
	customer, err := f.customer.Create(ctx, req)
	require.NoError(t, err)

	tier, err := f.tier.Create(ctx, taxtierdomain.CreateTaxTierRequest{
		Label:            "GST 18%",
		TotalRatePercent: 18,
		HalfRatePercent:  9,
	})
	require.NoError(t, err)

	return company, customer, tier
}

func TestCreateInvoiceIntrastate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		WithTax:    true,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 2, UnitRate: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, gst.Intrastate, invoice.Jurisdiction)
	assert.Equal(t, int64(20000), invoice.AssessableValue)
	assert.Equal(t, int64(3600), invoice.TotalTax)
	assert.Equal(t, int64(1800), invoice.SGST)
	assert.Equal(t, int64(1800), invoice.CGST)
	assert.Equal(t, int64(0), invoice.IGST)
	assert.Equal(t, int64(23600), invoice.GrandTotal)

	assert.Equal(t, int64(1), invoice.SequenceNo)
	assert.Equal(t, 2025, invoice.BillYear)
	require.Len(t, invoice.BillNumber, 15)
	assert.Equal(t, byte('1'), invoice.BillNumber[4])
	assert.True(t, strings.HasSuffix(invoice.BillNumber, "0000012025"))
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, int64(23600), invoice.Items[0].Total)
}

func TestCreateInvoiceOddPaisaGoesToCGST(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		WithTax:    true,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Dye", Quantity: 1, UnitRate: 102.25},
		},
	})
	require.NoError(t, err)

	// 10225p at 18% = 1840.5p, rounds to 1841
	assert.Equal(t, int64(1841), invoice.TotalTax)
	assert.Equal(t, int64(920), invoice.SGST)
	assert.Equal(t, int64(921), invoice.CGST)
	assert.Equal(t, invoice.AssessableValue+invoice.SGST+invoice.CGST+invoice.IGST, invoice.GrandTotal)
}

func TestCreateInvoiceInterstateAndExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("interstate", func(t *testing.T) {
		company, customer, tier := f.seed(t, "27", false)
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customer.ID.String(),
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, gst.Interstate, invoice.Jurisdiction)
		assert.Equal(t, int64(1800), invoice.IGST)
		assert.Zero(t, invoice.SGST)
		assert.Zero(t, invoice.CGST)
	})

	t.Run("export", func(t *testing.T) {
		company, customer, tier := f.seed(t, "", false)
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customer.ID.String(),
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, gst.Export, invoice.Jurisdiction)
		assert.Equal(t, int64(1800), invoice.IGST)
	})
}

func TestCreateInvoiceTaxOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("exempt customer", func(t *testing.T) {
		company, customer, tier := f.seed(t, "24", true)
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customer.ID.String(),
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		assert.Zero(t, invoice.TotalTax)
		assert.Equal(t, invoice.AssessableValue, invoice.GrandTotal)
		// nominal tier stays on record
		assert.Equal(t, tier.ID, invoice.TaxTierID)
	})

	t.Run("without tax", func(t *testing.T) {
		company, customer, tier := f.seed(t, "24", false)
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customer.ID.String(),
			TaxTierID:  tier.ID.String(),
			WithTax:    false,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		assert.Zero(t, invoice.TotalTax)
		assert.Equal(t, byte('0'), invoice.BillNumber[4])
	})
}

func TestCreateInvoiceDisabledTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	_, err := f.tier.Disable(ctx, tier.ID.String())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		WithTax:    true,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
		},
	})
	assert.ErrorIs(t, err, taxtierdomain.ErrTierDisabled)
}

func TestSequencePerCompanyAndYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	create := func(billDate time.Time) domain.Invoice {
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customer.ID.String(),
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			BillDate:   billDate,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		return invoice
	}

	first := create(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	second := create(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	nextYear := create(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, int64(1), first.SequenceNo)
	assert.Equal(t, int64(2), second.SequenceNo)
	assert.Equal(t, int64(1), nextYear.SequenceNo)
	assert.NotEqual(t, first.BillNumber, second.BillNumber)
	assert.True(t, strings.HasSuffix(nextYear.BillNumber, "2026"), nextYear.BillNumber)
}

func TestUpdateInvoiceRecomputesButKeepsBillNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		WithTax:    true,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
		},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, domain.UpdateInvoiceRequest{
		ID: invoice.ID.String(),
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 3, UnitRate: 100},
			{Name: "Dye", Quantity: 1, UnitRate: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, invoice.BillNumber, updated.BillNumber)
	assert.Equal(t, invoice.SequenceNo, updated.SequenceNo)
	assert.Equal(t, int64(35000), updated.AssessableValue)
	assert.Equal(t, int64(6300), updated.TotalTax)
	require.Len(t, updated.Items, 2)

	got, err := f.svc.GetByID(ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, updated.GrandTotal, got.GrandTotal)
	assert.Len(t, got.Items, 2)
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		WithTax:    true,
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, invoice.ID.String()))

	_, err = f.svc.GetByID(ctx, invoice.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrNoItems)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  fmt.Sprintf("%d", company.ID+1),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
		},
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CompanyID:  company.ID.String(),
		CustomerID: customer.ID.String(),
		TaxTierID:  tier.ID.String(),
		Items: []domain.CreateInvoiceItemRequest{
			{Name: "Cotton Yarn", Quantity: 0, UnitRate: 100},
		},
	})
	assert.ErrorIs(t, err, gst.ErrInvalidQuantity)
}

func TestListInvoicesSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	interstate := "27"
	other, err := f.customer.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:      "Patel Textiles",
		StateCode: &interstate,
	})
	require.NoError(t, err)

	create := func(customerID string) domain.Invoice {
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customerID,
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: 100},
			},
		})
		require.NoError(t, err)
		return invoice
	}
	first := create(customer.ID.String())
	second := create(other.ID.String())

	byNumber, err := f.svc.List(ctx, domain.ListInvoiceRequest{Search: first.BillNumber})
	require.NoError(t, err)
	require.Len(t, byNumber.Invoices, 1)
	assert.Equal(t, first.ID, byNumber.Invoices[0].ID)

	byCustomer, err := f.svc.List(ctx, domain.ListInvoiceRequest{Search: "Patel"})
	require.NoError(t, err)
	require.Len(t, byCustomer.Invoices, 1)
	assert.Equal(t, second.ID, byCustomer.Invoices[0].ID)

	none, err := f.svc.List(ctx, domain.ListInvoiceRequest{Search: "no such party"})
	require.NoError(t, err)
	assert.Empty(t, none.Invoices)
}

func TestInvoiceReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company, customer, tier := f.seed(t, "24", false)

	interstate := "27"
	other, err := f.customer.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:      "Patel Textiles",
		StateCode: &interstate,
	})
	require.NoError(t, err)

	create := func(customerID string, billDate time.Time, rate float64) domain.Invoice {
		invoice, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
			CompanyID:  company.ID.String(),
			CustomerID: customerID,
			TaxTierID:  tier.ID.String(),
			WithTax:    true,
			BillDate:   billDate,
			Items: []domain.CreateInvoiceItemRequest{
				{Name: "Cotton Yarn", Quantity: 1, UnitRate: rate},
			},
		})
		require.NoError(t, err)
		return invoice
	}
	create(customer.ID.String(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 100)
	create(other.ID.String(), time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), 200)
	create(customer.ID.String(), time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 500)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	report, err := f.svc.Report(ctx, domain.ReportRequest{
		CompanyID: company.ID.String(),
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)

	assert.Equal(t, company.ID, report.CompanyID)
	assert.Equal(t, "Suresh Enterprise", report.CompanyName)
	assert.Equal(t, 2, report.TotalInvoices)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Mahavir Traders", report.Rows[0].CustomerName)
	assert.Equal(t, gst.Intrastate, report.Rows[0].Jurisdiction)
	assert.Equal(t, "Patel Textiles", report.Rows[1].CustomerName)
	assert.Equal(t, gst.Interstate, report.Rows[1].Jurisdiction)

	// 100 intrastate + 200 interstate at 18%
	assert.Equal(t, int64(30000), report.TotalAssessable)
	assert.Equal(t, int64(900), report.TotalSGST)
	assert.Equal(t, int64(900), report.TotalCGST)
	assert.Equal(t, int64(3600), report.TotalIGST)
	assert.Equal(t, int64(35400), report.GrandTotal)
	assert.Equal(t, f.clock.Now(), report.GeneratedAt)

	narrowed, err := f.svc.Report(ctx, domain.ReportRequest{
		CompanyID:  company.ID.String(),
		CustomerID: other.ID.String(),
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	require.Len(t, narrowed.Rows, 1)
	assert.Equal(t, int64(20000), narrowed.TotalAssessable)

	_, err = f.svc.Report(ctx, domain.ReportRequest{
		CompanyID: company.ID.String(),
		From:      &to,
		To:        &from,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = f.svc.Report(ctx, domain.ReportRequest{
		CompanyID: fmt.Sprintf("%d", company.ID+1),
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}
