package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/service"
)

// ReviewController 评价控制器
type ReviewController struct {
	svc *service.ReviewService
}

// NewReviewController 创建评价控制器
func NewReviewController(svc *service.ReviewService) *ReviewController {
	return &ReviewController{svc: svc}
}

// ListByProduct 商品评价列表
// GET /api/store/products/:id/reviews
func (c *ReviewController) ListByProduct(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}
	skip, limit := pagination(ctx)

	reviews, err := c.svc.ListByProduct(ctx, productID, skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

// Create 创建评价
// POST /api/store/products/:id/reviews
func (c *ReviewController) Create(ctx *gin.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	review, err := c.svc.Create(ctx, auth.UserID, productID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, review)
}

// Update 更新评价
// PUT /api/store/reviews/:id
func (c *ReviewController) Update(ctx *gin.Context) {
	reviewID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := c.svc.Update(ctx, middleware.GetAuthContext(ctx), reviewID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// Delete 删除评价
// DELETE /api/store/reviews/:id
func (c *ReviewController) Delete(ctx *gin.Context) {
	reviewID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	if err := c.svc.Delete(ctx, middleware.GetAuthContext(ctx), reviewID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
