package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	invoicedomain "github.com/saralbooks/saral/internal/invoice/domain"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

type billingFixtureIDs struct {
	companyID  string
	customerID string
	tierID     string
}

func seedBillingFixture(t *testing.T, srv *Server) billingFixtureIDs {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/companies", gin.H{
		"name":  "Umiya Traders",
		"gstin": "27AAPFU0939F1ZV",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var comp companydomain.Company
	decodeData(t, rec, &comp)

	rec = doRequest(t, srv, http.MethodPost, "/api/customers", gin.H{
		"name":            "Mahavir Traders",
		"state_code":      "27",
		"opening_balance": 1000.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var cust customerdomain.Customer
	decodeData(t, rec, &cust)

	rec = doRequest(t, srv, http.MethodPost, "/api/tax_tiers", gin.H{
		"label":              "GST 18%",
		"total_rate_percent": 18.0,
		"half_rate_percent":  9.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var tier taxtierdomain.TaxTier
	decodeData(t, rec, &tier)

	return billingFixtureIDs{
		companyID:  comp.ID.String(),
		customerID: cust.ID.String(),
		tierID:     tier.ID.String(),
	}
}

func createInvoiceFor(t *testing.T, srv *Server, ids billingFixtureIDs) invoicedomain.Invoice {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/invoices", gin.H{
		"company_id":  ids.companyID,
		"customer_id": ids.customerID,
		"tax_tier_id": ids.tierID,
		"with_tax":    true,
		"bill_date":   "2025-06-15T00:00:00Z",
		"items": []gin.H{
			{"name": "Cement OPC 53", "hsn_code": "2523", "uom": "BAG", "quantity": 2, "unit_rate": 100.0},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var inv invoicedomain.Invoice
	decodeData(t, rec, &inv)
	return inv
}

func TestCreateInvoiceEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)

	inv := createInvoiceFor(t, srv, ids)

	assert.Equal(t, "INTRASTATE", string(inv.Jurisdiction))
	assert.EqualValues(t, 20000, inv.AssessableValue)
	assert.EqualValues(t, 1800, inv.SGST)
	assert.EqualValues(t, 1800, inv.CGST)
	assert.EqualValues(t, 0, inv.IGST)
	assert.EqualValues(t, 23600, inv.GrandTotal)
	assert.Len(t, inv.BillNumber, 15)

	rec := doRequest(t, srv, http.MethodGet, "/api/invoices/"+inv.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched invoicedomain.Invoice
	decodeData(t, rec, &fetched)
	assert.Equal(t, inv.BillNumber, fetched.BillNumber)
	assert.Len(t, fetched.Items, 1)
}

func TestCreateInvoiceValidation(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/invoices", gin.H{
		"company_id":  ids.companyID,
		"customer_id": ids.customerID,
		"tax_tier_id": ids.tierID,
		"with_tax":    true,
		"bill_date":   "2025-06-15T00:00:00Z",
		"items":       []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestGetCompanyNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/companies/123456789012345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestDisabledTierConflict(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/tax_tiers/"+ids.tierID+"/disable", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/invoices", gin.H{
		"company_id":  ids.companyID,
		"customer_id": ids.customerID,
		"tax_tier_id": ids.tierID,
		"with_tax":    true,
		"bill_date":   "2025-06-15T00:00:00Z",
		"items": []gin.H{
			{"name": "Cement OPC 53", "quantity": 1, "unit_rate": 100.0},
		},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecordPaymentNormalizesMode(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)

	rec := doRequest(t, srv, http.MethodPost, "/api/payments", gin.H{
		"customer_id": ids.customerID,
		"amount":      50.0,
		"mode":        "upi",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pay paymentdomain.Payment
	decodeData(t, rec, &pay)
	assert.Equal(t, paymentdomain.ModeUPI, pay.Mode)
	assert.EqualValues(t, 5000, pay.Amount)
	assert.NotEmpty(t, pay.ReceiptNo)
}

func TestLedgerStatementJSONAndCSV(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)
	createInvoiceFor(t, srv, ids)

	rec := doRequest(t, srv, http.MethodPost, "/api/payments", gin.H{
		"customer_id": ids.customerID,
		"amount":      50.0,
		"mode":        "CASH",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/customers/"+ids.customerID+"/ledger", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stmt struct {
		OpeningBalance int64 `json:"opening_balance"`
		ClosingBalance int64 `json:"closing_balance"`
		Rows           []struct {
			Reference string `json:"Reference"`
		} `json:"rows"`
	}
	decodeData(t, rec, &stmt)
	assert.EqualValues(t, 100000, stmt.OpeningBalance)
	assert.EqualValues(t, 118600, stmt.ClosingBalance)
	assert.Len(t, stmt.Rows, 2)

	rec = doRequest(t, srv, http.MethodGet, "/api/customers/"+ids.customerID+"/ledger/csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Opening Balance")
	assert.Contains(t, body, "Closing Balance")
	assert.Contains(t, body, "1186.00")
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	// debit rows leave the credit column blank, not zero
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, "invoice") {
			fields := strings.Split(line, ",")
			require.Len(t, fields, 6)
			assert.Equal(t, "236.00", fields[3])
			assert.Equal(t, "", fields[4])
		}
	}
}

func TestLedgerInvalidCustomerID(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/customers/not-an-id/ledger", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvoicePDFDownload(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)
	inv := createInvoiceFor(t, srv, ids)

	rec := doRequest(t, srv, http.MethodGet, "/api/invoices/"+inv.ID.String()+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestListInvoicesSearchFilter(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)
	inv := createInvoiceFor(t, srv, ids)

	rec := doRequest(t, srv, http.MethodGet, "/api/invoices?search="+inv.BillNumber, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byNumber invoicedomain.ListInvoiceResponse
	decodeData(t, rec, &byNumber)
	require.Len(t, byNumber.Invoices, 1)
	assert.Equal(t, inv.ID, byNumber.Invoices[0].ID)

	rec = doRequest(t, srv, http.MethodGet, "/api/invoices?search=Mahavir", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byName invoicedomain.ListInvoiceResponse
	decodeData(t, rec, &byName)
	require.Len(t, byName.Invoices, 1)

	rec = doRequest(t, srv, http.MethodGet, "/api/invoices?search=nomatch", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var empty invoicedomain.ListInvoiceResponse
	decodeData(t, rec, &empty)
	assert.Empty(t, empty.Invoices)
}

func TestInvoiceReportPDF(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)
	createInvoiceFor(t, srv, ids)

	path := "/api/invoices/report/pdf?company_id=" + ids.companyID + "&from=2025-06-01&to=2025-06-30"
	rec := doRequest(t, srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-report.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestInvoiceReportPDFBadRange(t *testing.T) {
	srv := newTestServer(t)
	ids := seedBillingFixture(t, srv)

	path := "/api/invoices/report/pdf?company_id=" + ids.companyID + "&from=2025-07-01&to=2025-06-01"
	rec := doRequest(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
