package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	ledgerdomain "github.com/saralbooks/saral/internal/ledger/domain"
	"github.com/saralbooks/saral/internal/ledger/reconcile"
	"github.com/saralbooks/saral/internal/money"
	"github.com/saralbooks/saral/internal/providers/pdf"
)

func (s *Server) ledgerStatement(c *gin.Context) (ledgerdomain.Statement, bool) {
	var query struct {
		From string `form:"from"`
		To   string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return ledgerdomain.Statement{}, false
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return ledgerdomain.Statement{}, false
	}

	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return ledgerdomain.Statement{}, false
	}

	stmt, err := s.ledgerSvc.Statement(c.Request.Context(), ledgerdomain.StatementRequest{
		CustomerID: strings.TrimSpace(c.Param("id")),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return ledgerdomain.Statement{}, false
	}

	return stmt, true
}

func (s *Server) GetLedgerStatement(c *gin.Context) {
	stmt, ok := s.ledgerStatement(c)
	if !ok {
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordLedgerStatement(c.Request.Context(), "json")
	}

	c.JSON(http.StatusOK, gin.H{"data": stmt})
}

func (s *Server) GetLedgerStatementCSV(c *gin.Context) {
	stmt, ok := s.ledgerStatement(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Date", "Reference", "Type", "Debit", "Credit", "Balance"})
	_ = w.Write([]string{"", "Opening Balance", "", "", "", money.Paise(stmt.OpeningBalance).String()})
	for _, row := range stmt.Rows {
		_ = w.Write([]string{
			row.Date.Format(billDateLayout),
			row.Reference,
			string(row.Kind),
			ledgerCell(row.Kind == reconcile.KindInvoice, row.Debited),
			ledgerCell(row.Kind == reconcile.KindPayment, row.Credited),
			row.Balance.String(),
		})
	}
	_ = w.Write([]string{"", "Closing Balance", "", "", "", money.Paise(stmt.ClosingBalance).String()})
	w.Flush()
	if err := w.Error(); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordLedgerStatement(c.Request.Context(), "csv")
	}

	filename := ledgerFilename(stmt.CustomerName, "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) GetLedgerStatementPDF(c *gin.Context) {
	stmt, ok := s.ledgerStatement(c)
	if !ok {
		return
	}

	data := pdf.LedgerData{
		CustomerName:   stmt.CustomerName,
		Period:         ledgerPeriod(stmt),
		OpeningBalance: money.Paise(stmt.OpeningBalance).String(),
		ClosingBalance: money.Paise(stmt.ClosingBalance).String(),
	}
	for _, row := range stmt.Rows {
		data.Rows = append(data.Rows, pdf.LedgerRowData{
			Date:      row.Date.Format(billDateLayout),
			Reference: row.Reference,
			Debited:   ledgerCell(row.Kind == reconcile.KindInvoice, row.Debited),
			Credited:  ledgerCell(row.Kind == reconcile.KindPayment, row.Credited),
			Balance:   row.Balance.String(),
		})
	}

	out, err := s.pdf.GenerateLedger(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordLedgerStatement(c.Request.Context(), "pdf")
		s.obsMetrics.RecordPDFRender(c.Request.Context(), "ledger")
	}

	filename := ledgerFilename(stmt.CustomerName, "pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// ledgerCell renders the active side of a row; the inactive side stays
// blank, never "0.00".
func ledgerCell(active bool, amount money.Paise) string {
	if !active {
		return ""
	}
	return amount.String()
}

func ledgerPeriod(stmt ledgerdomain.Statement) string {
	return periodLabel(stmt.From, stmt.To)
}

func periodLabel(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return from.Format(billDateLayout) + " to " + to.Format(billDateLayout)
	case from != nil:
		return "From " + from.Format(billDateLayout)
	case to != nil:
		return "Up to " + to.Format(billDateLayout)
	default:
		return "All transactions"
	}
}

func ledgerFilename(customerName, ext string) string {
	name := slug.Make(customerName)
	if name == "" {
		name = "ledger"
	}
	return name + "-ledger." + ext
}
