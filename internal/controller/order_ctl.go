package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// ==================== 结算 ====================

// Create 结算下单
// POST /api/store/orders
func (c *OrderController) Create(ctx *gin.Context) {
	// 请求体可省略，省略时只结算当前用户名下的条目
	var req dto.CreateOrderRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	auth := middleware.GetAuthContext(ctx)
	order, err := c.svc.Checkout(ctx, auth.UserID, req.SessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// ==================== 查询 ====================

// List 订单列表
// GET /api/store/orders
func (c *OrderController) List(ctx *gin.Context) {
	auth := middleware.GetAuthContext(ctx)
	skip, limit := pagination(ctx)

	orders, err := c.svc.ListOrders(ctx, auth.UserID, skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetByID 订单详情
// GET /api/store/orders/:id
func (c *OrderController) GetByID(ctx *gin.Context) {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	order, err := c.svc.GetOrder(ctx, auth.UserID, orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// ==================== 支付与取消 ====================

// Pay 模拟支付
// POST /api/store/orders/:id/pay
func (c *OrderController) Pay(ctx *gin.Context) {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	order, err := c.svc.Pay(ctx, auth.UserID, orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// Cancel 取消订单
// POST /api/store/orders/:id/cancel
func (c *OrderController) Cancel(ctx *gin.Context) {
	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	order, err := c.svc.Cancel(ctx, auth.UserID, orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// ==================== 购买记录与内容 ====================

// ListPurchases 购买历史
// GET /api/store/purchases
func (c *OrderController) ListPurchases(ctx *gin.Context) {
	auth := middleware.GetAuthContext(ctx)
	skip, limit := pagination(ctx)

	purchases, err := c.svc.ListPurchases(ctx, auth.UserID, skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, purchases)
}

// GetContent 已购内容下发
// GET /api/store/purchases/:order_id/content
func (c *OrderController) GetContent(ctx *gin.Context) {
	orderID, err := strconv.ParseInt(ctx.Param("order_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	content, err := c.svc.GetPurchaseContent(ctx, auth.UserID, orderID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, content)
}

// pagination 解析 skip/limit 查询参数
func pagination(ctx *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
