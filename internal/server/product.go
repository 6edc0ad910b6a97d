package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/saralbooks/saral/internal/product/domain"
	"github.com/saralbooks/saral/pkg/db/pagination"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

type createProductRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        string  `json:"name"`
	HSNCode     string  `json:"hsn_code"`
	UOM         string  `json:"uom"`
	UnitRate    float64 `json:"unit_rate"`
	Description *string `json:"description"`
}

type updateProductRequest struct {
	CategoryID  *string  `json:"category_id"`
	Name        *string  `json:"name"`
	HSNCode     *string  `json:"hsn_code"`
	UOM         *string  `json:"uom"`
	UnitRate    *float64 `json:"unit_rate"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.CreateCategory(c.Request.Context(), productdomain.CreateCategoryRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCategories(c *gin.Context) {
	resp, err := s.productSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.productSvc.DeleteCategory(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		HSNCode:     strings.TrimSpace(req.HSNCode),
		UOM:         strings.TrimSpace(req.UOM),
		UnitRate:    req.UnitRate,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search     string `form:"search"`
		CategoryID string `form:"category_id"`
		Active     string `form:"active"`
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

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		Search:     strings.TrimSpace(query.Search),
		CategoryID: strings.TrimSpace(query.CategoryID),
		Active:     active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateProductRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		UOM:         req.UOM,
		UnitRate:    req.UnitRate,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.productSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
