package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	"github.com/saralbooks/saral/internal/money"
	"github.com/saralbooks/saral/internal/providers/pdf"
	"github.com/saralbooks/saral/pkg/db/pagination"
)

const billDateLayout = "02-01-2006"

type createInvoiceItemRequest struct {
	ProductID *string `json:"product_id"`
	Name      string  `json:"name"`
	HSNCode   string  `json:"hsn_code"`
	UOM       string  `json:"uom"`
	Quantity  int64   `json:"quantity"`
	UnitRate  float64 `json:"unit_rate"`
}

type createInvoiceRequest struct {
	CompanyID  string                     `json:"company_id"`
	CustomerID string                     `json:"customer_id"`
	TaxTierID  string                     `json:"tax_tier_id"`
	WithTax    bool                       `json:"with_tax"`
	BillDate   time.Time                  `json:"bill_date"`
	Remarks    string                     `json:"remarks"`
	Items      []createInvoiceItemRequest `json:"items"`
}

type updateInvoiceRequest struct {
	CustomerID *string                    `json:"customer_id"`
	TaxTierID  *string                    `json:"tax_tier_id"`
	WithTax    *bool                      `json:"with_tax"`
	BillDate   *time.Time                 `json:"bill_date"`
	Remarks    *string                    `json:"remarks"`
	Items      []createInvoiceItemRequest `json:"items"`
}

func itemRequests(items []createInvoiceItemRequest) []invoicedomain.CreateInvoiceItemRequest {
	if items == nil {
		return nil
	}
	out := make([]invoicedomain.CreateInvoiceItemRequest, 0, len(items))
	for _, item := range items {
		out = append(out, invoicedomain.CreateInvoiceItemRequest{
			ProductID: item.ProductID,
			Name:      strings.TrimSpace(item.Name),
			HSNCode:   strings.TrimSpace(item.HSNCode),
			UOM:       strings.TrimSpace(item.UOM),
			Quantity:  item.Quantity,
			UnitRate:  item.UnitRate,
		})
	}
	return out
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CompanyID:  strings.TrimSpace(req.CompanyID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		TaxTierID:  strings.TrimSpace(req.TaxTierID),
		WithTax:    req.WithTax,
		BillDate:   req.BillDate,
		Remarks:    strings.TrimSpace(req.Remarks),
		Items:      itemRequests(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordInvoiceCreated(c.Request.Context(), string(resp.Jurisdiction))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CompanyID  string `form:"company_id"`
		CustomerID string `form:"customer_id"`
		Search     string `form:"search"`
		From       string `form:"from"`
		To         string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}

	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		CompanyID:  strings.TrimSpace(query.CompanyID),
		CustomerID: strings.TrimSpace(query.CustomerID),
		Search:     strings.TrimSpace(query.Search),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		CustomerID: req.CustomerID,
		TaxTierID:  req.TaxTierID,
		WithTax:    req.WithTax,
		BillDate:   req.BillDate,
		Remarks:    req.Remarks,
		Items:      itemRequests(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := s.invoiceSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	comp, err := s.companySvc.GetByID(ctx, inv.CompanyID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cust, err := s.customerSvc.GetByID(ctx, inv.CustomerID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.InvoiceData{
		CompanyName:    comp.Name,
		CompanyAddress: comp.Address,
		CompanyGSTIN:   comp.GSTIN,
		BankDetails:    bankDetails(comp.BankName, comp.BankAccount, comp.BankIFSC),

		BillNumber: inv.BillNumber,
		BillDate:   inv.BillDate.Format(billDateLayout),

		CustomerName:    cust.Name,
		CustomerAddress: cust.BillingAddress,
		CustomerGSTIN:   derefString(cust.GSTNumber),

		AssessableValue: money.Paise(inv.AssessableValue).String(),
		GrandTotal:      money.Paise(inv.GrandTotal).String(),
	}

	// Only the split that applies prints; the other side stays blank.
	if inv.SGST > 0 || inv.CGST > 0 {
		data.SGST = money.Paise(inv.SGST).String()
		data.CGST = money.Paise(inv.CGST).String()
	} else if inv.IGST > 0 {
		data.IGST = money.Paise(inv.IGST).String()
	}

	for _, item := range inv.Items {
		data.Items = append(data.Items, pdf.InvoiceItemData{
			Name:     item.Name,
			HSNCode:  item.HSNCode,
			Quantity: strconv.FormatInt(item.Quantity, 10),
			UnitRate: money.Paise(item.UnitRate).String(),
			Total:    money.Paise(item.Total).String(),
		})
	}

	out, err := s.pdf.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPDFRender(ctx, "invoice")
	}

	filename := slug.Make(inv.BillNumber) + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// GetInvoiceReportPDF renders the period-wise invoice summary used for
// GST filing. Totals are the stored sums of each bucket.
func (s *Server) GetInvoiceReportPDF(c *gin.Context) {
	var query struct {
		CompanyID  string `form:"company_id"`
		CustomerID string `form:"customer_id"`
		From       string `form:"from"`
		To         string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}

	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	ctx := c.Request.Context()
	report, err := s.invoiceSvc.Report(ctx, invoicedomain.ReportRequest{
		CompanyID:  strings.TrimSpace(query.CompanyID),
		CustomerID: strings.TrimSpace(query.CustomerID),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	comp, err := s.companySvc.GetByID(ctx, report.CompanyID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.ReportData{
		CompanyName:  comp.Name,
		CompanyGSTIN: comp.GSTIN,
		Period:       periodLabel(report.From, report.To),
		GeneratedOn:  report.GeneratedAt.Format(billDateLayout),

		TotalInvoices:   strconv.Itoa(report.TotalInvoices),
		TotalAssessable: money.Paise(report.TotalAssessable).String(),
		TotalSGST:       money.Paise(report.TotalSGST).String(),
		TotalCGST:       money.Paise(report.TotalCGST).String(),
		TotalIGST:       money.Paise(report.TotalIGST).String(),
		GrandTotal:      money.Paise(report.GrandTotal).String(),
	}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, pdf.ReportRowData{
			BillNumber:   row.BillNumber,
			BillDate:     row.BillDate.Format(billDateLayout),
			CustomerName: row.CustomerName,
			Assessable:   money.Paise(row.AssessableValue).String(),
			SGST:         money.Paise(row.SGST).String(),
			CGST:         money.Paise(row.CGST).String(),
			IGST:         money.Paise(row.IGST).String(),
		})
	}

	out, err := s.pdf.GenerateBillReport(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPDFRender(ctx, "bill_report")
	}

	filename := slug.Make(comp.Name) + "-invoice-report.pdf"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

func bankDetails(name, account, ifsc string) string {
	parts := make([]string, 0, 3)
	if strings.TrimSpace(name) != "" {
		parts = append(parts, name)
	}
	if strings.TrimSpace(account) != "" {
		parts = append(parts, "A/C "+account)
	}
	if strings.TrimSpace(ifsc) != "" {
		parts = append(parts, "IFSC "+ifsc)
	}
	return strings.Join(parts, ", ")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
