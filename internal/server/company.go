package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/saralbooks/saral/internal/company/domain"
)

type createCompanyRequest struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	GSTIN            string `json:"gstin"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	BankName         string `json:"bank_name"`
	BankAccount      string `json:"bank_account"`
	BankIFSC         string `json:"bank_ifsc"`
	DefaultTaxTierID string `json:"default_tax_tier_id"`
}

type updateCompanyRequest struct {
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	GSTIN            *string `json:"gstin"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	BankName         *string `json:"bank_name"`
	BankAccount      *string `json:"bank_account"`
	BankIFSC         *string `json:"bank_ifsc"`
	DefaultTaxTierID *string `json:"default_tax_tier_id"`
}

func (s *Server) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Create(c.Request.Context(), companydomain.CreateCompanyRequest{
		Name:             strings.TrimSpace(req.Name),
		Address:          strings.TrimSpace(req.Address),
		GSTIN:            strings.TrimSpace(req.GSTIN),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		BankName:         strings.TrimSpace(req.BankName),
		BankAccount:      strings.TrimSpace(req.BankAccount),
		BankIFSC:         strings.TrimSpace(req.BankIFSC),
		DefaultTaxTierID: strings.TrimSpace(req.DefaultTaxTierID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCompanies(c *gin.Context) {
	var query struct {
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.List(c.Request.Context(), companydomain.ListCompanyRequest{
		Name: strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCompanyByID(c *gin.Context) {
	resp, err := s.companySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateCompanyRequest{
		ID:               strings.TrimSpace(c.Param("id")),
		Name:             req.Name,
		Address:          req.Address,
		GSTIN:            req.GSTIN,
		Phone:            req.Phone,
		Email:            req.Email,
		BankName:         req.BankName,
		BankAccount:      req.BankAccount,
		BankIFSC:         req.BankIFSC,
		DefaultTaxTierID: req.DefaultTaxTierID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCompany(c *gin.Context) {
	if err := s.companySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
