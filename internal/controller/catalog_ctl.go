package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/service"
)

// CatalogController 目录控制器
type CatalogController struct {
	svc *service.CatalogService
}

// NewCatalogController 创建目录控制器
func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{svc: svc}
}

// ==================== 分类 ====================

// ListCategories 分类列表
// GET /api/store/categories
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.svc.ListCategories(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// CreateCategory 创建分类（仅管理员）
// POST /api/store/categories
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	auth := middleware.GetAuthContext(ctx)
	if !auth.IsStaff {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "无权限访问"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := c.svc.CreateCategory(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// ==================== 商品 ====================

// ListProducts 商品列表
// GET /api/store/products
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	var req dto.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := c.svc.ListProducts(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProduct 商品详情
// GET /api/store/products/:id
func (c *CatalogController) GetProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	product, err := c.svc.GetProduct(ctx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct 创建商品
// POST /api/store/products
func (c *CatalogController) CreateProduct(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := c.svc.CreateProduct(ctx, middleware.GetAuthContext(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct 更新商品
// PUT /api/store/products/:id
func (c *CatalogController) UpdateProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	var req dto.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := c.svc.UpdateProduct(ctx, middleware.GetAuthContext(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct 删除商品
// DELETE /api/store/products/:id
func (c *CatalogController) DeleteProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	if err := c.svc.DeleteProduct(ctx, middleware.GetAuthContext(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
