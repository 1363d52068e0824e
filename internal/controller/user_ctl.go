package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/service"
)

// UserController 用户控制器
type UserController struct {
	svc *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(svc *service.UserService) *UserController {
	return &UserController{svc: svc}
}

// ==================== 认证 ====================

// Register 用户注册
// POST /api/users/register
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.svc.Register(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login 用户登录（OAuth2 form 风格）
// POST /api/users/login
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := c.svc.Login(ctx, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ==================== 用户查询 ====================

// Me 当前用户信息
// GET /api/users/me
func (c *UserController) Me(ctx *gin.Context) {
	auth := middleware.GetAuthContext(ctx)

	user, err := c.svc.GetByID(ctx, auth.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// List 用户列表（仅管理员）
// GET /api/users
func (c *UserController) List(ctx *gin.Context) {
	auth := middleware.GetAuthContext(ctx)
	if !auth.IsStaff {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "无权限访问"})
		return
	}

	users, err := c.svc.List(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetByID 获取用户（仅管理员或本人）
// GET /api/users/:id
func (c *UserController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	if !auth.IsStaff && auth.UserID != id {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "无权限访问"})
		return
	}

	user, err := c.svc.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// ==================== 用户管理 ====================

// Update 整体更新用户
// PUT /api/users/:id
func (c *UserController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.svc.Update(ctx, middleware.GetAuthContext(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Patch 局部更新用户
// PATCH /api/users/:id
func (c *UserController) Patch(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	var req dto.PatchUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.svc.Patch(ctx, middleware.GetAuthContext(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Delete 删除用户
// DELETE /api/users/:id
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}

	if err := c.svc.Delete(ctx, middleware.GetAuthContext(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ChangePassword 修改密码
// POST /api/users/me/password
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth := middleware.GetAuthContext(ctx)
	if err := c.svc.ChangePassword(ctx, auth.UserID, &req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
