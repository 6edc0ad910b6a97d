package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/clock"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/invoice/format"
	"github.com/saralbooks/saral/internal/invoice/gst"
	"github.com/saralbooks/saral/internal/money"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CompanySvc  companydomain.Service
	CustomerSvc customerdomain.Service
	TierSvc     taxtierdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	companySvc  companydomain.Service
	customerSvc customerdomain.Service
	tierSvc     taxtierdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		companySvc:  p.CompanySvc,
		customerSvc: p.CustomerSvc,
		tierSvc:     p.TierSvc,
	}
}

// billContext is the resolved master data a computation runs against.
type billContext struct {
	company      companydomain.Company
	customer     customerdomain.Customer
	tier         taxtierdomain.TaxTier
	jurisdiction gst.Jurisdiction
	rate         money.BasisPoints
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if len(req.Items) == 0 {
		return domain.Invoice{}, domain.ErrNoItems
	}

	bc, err := s.resolveBillContext(ctx, req.CompanyID, req.CustomerID, req.TaxTierID, req.WithTax)
	if err != nil {
		return domain.Invoice{}, err
	}

	billDate := req.BillDate
	if billDate.IsZero() {
		billDate = s.clock.Now()
	}
	billYear := billDate.Year()

	invoiceID := s.genID.Generate()
	items, totals, err := s.computeItems(invoiceID, req.Items, bc)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:           invoiceID,
		CompanyID:    bc.company.ID,
		CustomerID:   bc.customer.ID,
		TaxTierID:    bc.tier.ID,
		Jurisdiction: bc.jurisdiction,
		WithTax:      req.WithTax,
		BillYear:     billYear,
		BillDate:     billDate,
		Remarks:      strings.TrimSpace(req.Remarks),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyTotals(&invoice, totals)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(ctx, tx, bc.company.ID, billYear)
		if err != nil {
			return err
		}
		invoice.SequenceNo = seq
		invoice.BillNumber = format.BillNumber(int64(bc.company.ID), req.WithTax, seq, billYear)
		invoice.Items = items
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("bill_number", invoice.BillNumber),
		zap.String("jurisdiction", string(invoice.Jurisdiction)),
		zap.Int64("grand_total", invoice.GrandTotal),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	page := pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	invoices, err := s.repo.List(ctx, s.db, domain.ListInvoiceFilter{
		CompanyID:  strings.TrimSpace(req.CompanyID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Search:     strings.TrimSpace(req.Search),
		From:       req.From,
		To:         req.To,
	}, pagination.Pagination{PageToken: page.PageToken, PageSize: page.PageSize + 1})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	info := pagination.BuildCursorPageInfo(invoices, int32(page.PageSize), func(inv *domain.Invoice) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(invoices) > page.PageSize {
		invoices = invoices[:page.PageSize]
	}

	resp := domain.ListInvoiceResponse{PageInfo: *info}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, *inv)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

// Update recomputes every derived amount from the new inputs. The bill
// number, sequence and year stay as issued even when the bill date moves
// into another year.
func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoice, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	customerID := invoice.CustomerID.String()
	if req.CustomerID != nil {
		customerID = *req.CustomerID
	}
	tierID := invoice.TaxTierID.String()
	if req.TaxTierID != nil {
		tierID = *req.TaxTierID
	}
	withTax := invoice.WithTax
	if req.WithTax != nil {
		withTax = *req.WithTax
	}

	bc, err := s.resolveBillContext(ctx, invoice.CompanyID.String(), customerID, tierID, withTax)
	if err != nil {
		return domain.Invoice{}, err
	}

	itemReqs := req.Items
	if itemReqs == nil {
		itemReqs = itemRequestsFrom(invoice.Items)
	}
	if len(itemReqs) == 0 {
		return domain.Invoice{}, domain.ErrNoItems
	}

	items, totals, err := s.computeItems(invoice.ID, itemReqs, bc)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice.CustomerID = bc.customer.ID
	invoice.TaxTierID = bc.tier.ID
	invoice.Jurisdiction = bc.jurisdiction
	invoice.WithTax = withTax
	if req.BillDate != nil {
		invoice.BillDate = *req.BillDate
	}
	if req.Remarks != nil {
		invoice.Remarks = strings.TrimSpace(*req.Remarks)
	}
	applyTotals(&invoice, totals)
	invoice.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, &invoice); err != nil {
			return err
		}
		return s.repo.ReplaceItems(ctx, tx, invoice.ID, items)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice.Items = items
	return invoice, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, s.db, invoice.ID)
	if err != nil {
		return err
	}

	s.log.Info("invoice deleted",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("bill_number", invoice.BillNumber),
	)
	return nil
}

// Report sums the stored GST buckets over every invoice in the window.
// Totals come from the persisted columns; nothing is recomputed.
func (s *Service) Report(ctx context.Context, req domain.ReportRequest) (domain.Report, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return domain.Report{}, domain.ErrInvalidRange
	}

	company, err := s.companySvc.GetByID(ctx, strings.TrimSpace(req.CompanyID))
	if err != nil {
		if errors.Is(err, companydomain.ErrNotFound) {
			return domain.Report{}, domain.ErrCompanyNotFound
		}
		if errors.Is(err, companydomain.ErrInvalidID) {
			return domain.Report{}, domain.ErrInvalidID
		}
		return domain.Report{}, err
	}

	filter := domain.ListInvoiceFilter{
		CompanyID: company.ID.String(),
		From:      req.From,
		To:        req.To,
	}
	if customerID := strings.TrimSpace(req.CustomerID); customerID != "" {
		customer, err := s.customerSvc.GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, customerdomain.ErrNotFound) {
				return domain.Report{}, domain.ErrCustomerNotFound
			}
			if errors.Is(err, customerdomain.ErrInvalidID) {
				return domain.Report{}, domain.ErrInvalidID
			}
			return domain.Report{}, err
		}
		filter.CustomerID = customer.ID.String()
	}

	rows, err := s.repo.ReportRows(ctx, s.db, filter)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		From:        req.From,
		To:          req.To,
		Rows:        rows,
		GeneratedAt: s.clock.Now(),
	}
	for _, row := range rows {
		report.TotalInvoices++
		report.TotalAssessable += row.AssessableValue
		report.TotalSGST += row.SGST
		report.TotalCGST += row.CGST
		report.TotalIGST += row.IGST
		report.GrandTotal += row.GrandTotal
	}

	s.log.Debug("bill report generated",
		zap.String("company_id", company.ID.String()),
		zap.Int("invoices", report.TotalInvoices),
	)
	return report, nil
}

func (s *Service) resolveBillContext(ctx context.Context, companyID, customerID, tierID string, withTax bool) (billContext, error) {
	company, err := s.companySvc.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companydomain.ErrNotFound) {
			return billContext{}, domain.ErrCompanyNotFound
		}
		if errors.Is(err, companydomain.ErrInvalidID) {
			return billContext{}, domain.ErrInvalidID
		}
		return billContext{}, err
	}

	customer, err := s.customerSvc.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerdomain.ErrNotFound) {
			return billContext{}, domain.ErrCustomerNotFound
		}
		if errors.Is(err, customerdomain.ErrInvalidID) {
			return billContext{}, domain.ErrInvalidID
		}
		return billContext{}, err
	}

	tier, err := s.tierSvc.GetByID(ctx, tierID)
	if err != nil {
		if errors.Is(err, taxtierdomain.ErrNotFound) {
			return billContext{}, domain.ErrTierNotFound
		}
		if errors.Is(err, taxtierdomain.ErrInvalidID) {
			return billContext{}, domain.ErrInvalidID
		}
		return billContext{}, err
	}
	if !tier.Active {
		return billContext{}, taxtierdomain.ErrTierDisabled
	}

	jurisdiction, err := gst.Classify(company.GSTIN, customer.EffectiveStateCode())
	if err != nil {
		return billContext{}, err
	}

	rate := tier.Rate()
	if customer.TaxExempt || !withTax {
		// Exempt customers and without-tax bills zero the rate but keep
		// the nominal tier on record.
		rate = 0
		s.log.Info("tax override applied",
			zap.String("customer_id", customer.ID.String()),
			zap.Bool("customer_exempt", customer.TaxExempt),
			zap.Bool("with_tax", withTax),
		)
	}

	return billContext{
		company:      company,
		customer:     customer,
		tier:         tier,
		jurisdiction: jurisdiction,
		rate:         rate,
	}, nil
}

func (s *Service) computeItems(invoiceID snowflake.ID, reqs []domain.CreateInvoiceItemRequest, bc billContext) ([]domain.InvoiceItem, gst.Totals, error) {
	items := make([]domain.InvoiceItem, 0, len(reqs))
	lines := make([]gst.Line, 0, len(reqs))

	for _, req := range reqs {
		name := strings.TrimSpace(req.Name)
		var productID *snowflake.ID
		if req.ProductID != nil && strings.TrimSpace(*req.ProductID) != "" {
			parsed, err := snowflake.ParseString(strings.TrimSpace(*req.ProductID))
			if err != nil {
				return nil, gst.Totals{}, domain.ErrInvalidID
			}
			productID = &parsed
		}
		if name == "" {
			return nil, gst.Totals{}, domain.ErrInvalidItem
		}

		unitRate := money.FromRupees(req.UnitRate)
		line, err := gst.ComputeLine(unitRate, req.Quantity, bc.rate)
		if err != nil {
			return nil, gst.Totals{}, err
		}

		lines = append(lines, line)
		items = append(items, domain.InvoiceItem{
			ID:        s.genID.Generate(),
			InvoiceID: invoiceID,
			ProductID: productID,
			Name:      name,
			HSNCode:   strings.TrimSpace(req.HSNCode),
			UOM:       strings.TrimSpace(req.UOM),
			Quantity:  req.Quantity,
			UnitRate:  int64(unitRate),
			Base:      int64(line.Base),
			Tax:       int64(line.Tax),
			Total:     int64(line.Total),
			CreatedAt: s.clock.Now(),
		})
	}

	return items, gst.Aggregate(lines, bc.jurisdiction), nil
}

func applyTotals(invoice *domain.Invoice, totals gst.Totals) {
	invoice.AssessableValue = int64(totals.Assessable)
	invoice.TotalTax = int64(totals.TotalTax)
	invoice.SGST = int64(totals.SGST)
	invoice.CGST = int64(totals.CGST)
	invoice.IGST = int64(totals.IGST)
	invoice.GrandTotal = int64(totals.Grand)
}

func itemRequestsFrom(items []domain.InvoiceItem) []domain.CreateInvoiceItemRequest {
	reqs := make([]domain.CreateInvoiceItemRequest, 0, len(items))
	for _, item := range items {
		var productID *string
		if item.ProductID != nil {
			id := item.ProductID.String()
			productID = &id
		}
		reqs = append(reqs, domain.CreateInvoiceItemRequest{
			ProductID: productID,
			Name:      item.Name,
			HSNCode:   item.HSNCode,
			UOM:       item.UOM,
			Quantity:  item.Quantity,
			UnitRate:  money.Paise(item.UnitRate).Rupees(),
		})
	}
	return reqs
}
