package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/repository"
	"digistore_v1/internal/service"
)

// CartController 购物车控制器
type CartController struct {
	svc *service.CartService
}

// NewCartController 创建购物车控制器
func NewCartController(svc *service.CartService) *CartController {
	return &CartController{svc: svc}
}

// cartOwner 解析请求的归属轴：登录用户优先于会话令牌
func cartOwner(ctx *gin.Context, sessionID string) repository.CartOwner {
	owner := repository.CartOwner{SessionID: sessionID}
	if auth := middleware.GetAuthContext(ctx); auth != nil {
		owner.UserID = auth.UserID
		owner.SessionID = ""
	}
	return owner
}

// List 购物车条目
// GET /api/store/cart?session_id=
func (c *CartController) List(ctx *gin.Context) {
	owner := cartOwner(ctx, ctx.Query("session_id"))

	items, err := c.svc.ListItems(ctx, owner)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Add 加入购物车
// POST /api/store/cart
// 匿名请求不带 session_id 时服务端生成一个，随条目返回给客户端保存
func (c *CartController) Add(ctx *gin.Context) {
	var req dto.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	owner := cartOwner(ctx, req.SessionID)
	if owner.IsEmpty() {
		owner.SessionID = uuid.NewString()
	}

	item, err := c.svc.AddItem(ctx, owner, req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Remove 删除条目
// DELETE /api/store/cart/:item_id
func (c *CartController) Remove(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("item_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	owner := cartOwner(ctx, ctx.Query("session_id"))
	if err := c.svc.RemoveItem(ctx, owner, itemID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Clear 清空购物车
// DELETE /api/store/cart?session_id=
func (c *CartController) Clear(ctx *gin.Context) {
	owner := cartOwner(ctx, ctx.Query("session_id"))

	if err := c.svc.Clear(ctx, owner); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
