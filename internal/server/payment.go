package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/saralbooks/saral/internal/payment/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
)

type createPaymentRequest struct {
	CustomerID string    `json:"customer_id"`
	InvoiceID  *string   `json:"invoice_id"`
	Amount     float64   `json:"amount"`
	Mode       string    `json:"mode"`
	PaidOn     time.Time `json:"paid_on"`
	Remarks    string    `json:"remarks"`
}

type updatePaymentRequest struct {
	Amount  *float64   `json:"amount"`
	Mode    *string    `json:"mode"`
	PaidOn  *time.Time `json:"paid_on"`
	Remarks *string    `json:"remarks"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		CustomerID: strings.TrimSpace(req.CustomerID),
		InvoiceID:  req.InvoiceID,
		Amount:     req.Amount,
		Mode:       paymentdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		PaidOn:     req.PaidOn,
		Remarks:    strings.TrimSpace(req.Remarks),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPaymentRecorded(c.Request.Context(), string(resp.Mode))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Pagination
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

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		CustomerID: strings.TrimSpace(query.CustomerID),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var mode *paymentdomain.PaymentMode
	if req.Mode != nil {
		normalized := paymentdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(*req.Mode)))
		mode = &normalized
	}

	resp, err := s.paymentSvc.Update(c.Request.Context(), paymentdomain.UpdatePaymentRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Amount:  req.Amount,
		Mode:    mode,
		PaidOn:  req.PaidOn,
		Remarks: req.Remarks,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
