package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxtierdomain "github.com/saralbooks/saral/internal/taxtier/domain"
)

type createTaxTierRequest struct {
	Label            string  `json:"label"`
	TotalRatePercent float64 `json:"total_rate_percent"`
	HalfRatePercent  float64 `json:"half_rate_percent"`
	Active           *bool   `json:"active"`
}

type updateTaxTierRequest struct {
	Label            *string  `json:"label"`
	TotalRatePercent *float64 `json:"total_rate_percent"`
	HalfRatePercent  *float64 `json:"half_rate_percent"`
}

func (s *Server) CreateTaxTier(c *gin.Context) {
	var req createTaxTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxTierSvc.Create(c.Request.Context(), taxtierdomain.CreateTaxTierRequest{
		Label:            strings.TrimSpace(req.Label),
		TotalRatePercent: req.TotalRatePercent,
		HalfRatePercent:  req.HalfRatePercent,
		Active:           req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxTiers(c *gin.Context) {
	var query struct {
		Active string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.taxTierSvc.List(c.Request.Context(), taxtierdomain.ListTaxTierRequest{
		Active: active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTaxTierByID(c *gin.Context) {
	resp, err := s.taxTierSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTaxTier(c *gin.Context) {
	var req updateTaxTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxTierSvc.Update(c.Request.Context(), taxtierdomain.UpdateTaxTierRequest{
		ID:               strings.TrimSpace(c.Param("id")),
		Label:            req.Label,
		TotalRatePercent: req.TotalRatePercent,
		HalfRatePercent:  req.HalfRatePercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableTaxTier(c *gin.Context) {
	resp, err := s.taxTierSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
