package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 分类 ====================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CategoryInfo 分类信息
type CategoryInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==================== 商品 ====================

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ContentText string          `json:"content_text" binding:"required"`
	CategoryID  int64           `json:"category_id"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateProductRequest 更新商品请求（字段可选）
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ContentText *string          `json:"content_text"`
	CategoryID  *int64           `json:"category_id"`
	IsActive    *bool            `json:"is_active"`
}

// ListProductsRequest 商品列表查询
type ListProductsRequest struct {
	CategoryID int64 `form:"category_id"`
	Skip       int   `form:"skip,default=0" binding:"min=0"`
	Limit      int   `form:"limit,default=100" binding:"min=1,max=100"`
}

// ProductInfo 商品信息（不含付费内容）
type ProductInfo struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id,omitempty"`
	SellerID    int64           `json:"seller_id"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
