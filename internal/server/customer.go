package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/saralbooks/saral/internal/customer/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
)

type createCustomerRequest struct {
	Name           string  `json:"name"`
	BillingAddress string  `json:"billing_address"`
	StateCode      *string `json:"state_code"`
	GSTNumber      *string `json:"gst_number"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	TaxExempt      bool    `json:"tax_exempt"`
	OpeningBalance float64 `json:"opening_balance"`
}

type updateCustomerRequest struct {
	Name           *string  `json:"name"`
	BillingAddress *string  `json:"billing_address"`
	StateCode      *string  `json:"state_code"`
	GSTNumber      *string  `json:"gst_number"`
	Phone          *string  `json:"phone"`
	Email          *string  `json:"email"`
	TaxExempt      *bool    `json:"tax_exempt"`
	OpeningBalance *float64 `json:"opening_balance"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:           strings.TrimSpace(req.Name),
		BillingAddress: strings.TrimSpace(req.BillingAddress),
		StateCode:      req.StateCode,
		GSTNumber:      req.GSTNumber,
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		TaxExempt:      req.TaxExempt,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search    string `form:"search"`
		StateCode string `form:"state_code"`
		TaxExempt string `form:"tax_exempt"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	taxExempt, err := parseOptionalBool(query.TaxExempt)
	if err != nil {
		AbortWithError(c, newValidationError("tax_exempt", "invalid_tax_exempt", "invalid tax_exempt"))
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Search:    strings.TrimSpace(query.Search),
		StateCode: strings.TrimSpace(query.StateCode),
		TaxExempt: taxExempt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), customerdomain.UpdateCustomerRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		Name:           req.Name,
		BillingAddress: req.BillingAddress,
		StateCode:      req.StateCode,
		GSTNumber:      req.GSTNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		TaxExempt:      req.TaxExempt,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
