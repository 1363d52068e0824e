package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

// ==================== CatalogService 目录服务 ====================

// CatalogService 分类与商品目录
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// ==================== 分类 ====================

// ListCategories 分类列表（按名称排序）
func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询分类列表失败: %w", err)
	}
	list := make([]dto.CategoryInfo, len(categories))
	for i, c := range categories {
		list[i] = dto.CategoryInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		}
	}
	return list, nil
}

// CreateCategory 创建分类，名称重复报冲突
func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryInfo, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	return &dto.CategoryInfo{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}, nil
}

// ==================== 商品 ====================

// ListProducts 商品列表：仅在售，按创建时间倒序
func (s *CatalogService) ListProducts(ctx context.Context, req *dto.ListProductsRequest) ([]dto.ProductInfo, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: req.CategoryID,
		ActiveOnly: true,
		Skip:       req.Skip,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}
	list := make([]dto.ProductInfo, len(products))
	for i := range products {
		list[i] = *toProductInfo(&products[i])
	}
	return list, nil
}

// GetProduct 商品详情（不含付费内容）
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*dto.ProductInfo, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return toProductInfo(product), nil
}

// CreateProduct 创建商品，卖家为当前用户
func (s *CatalogService) CreateProduct(ctx context.Context, auth *middleware.AuthContext, req *dto.CreateProductRequest) (*dto.ProductInfo, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	product := &model.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ContentText: req.ContentText,
		CategoryID:  req.CategoryID,
		SellerID:    auth.UserID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	return toProductInfo(product), nil
}

// UpdateProduct 更新商品（仅卖家本人或管理员）
func (s *CatalogService) UpdateProduct(ctx context.Context, auth *middleware.AuthContext, id int64, req *dto.UpdateProductRequest) (*dto.ProductInfo, error) {
	product, err := s.authorizeProductWrite(ctx, auth, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.ContentText != nil {
		product.ContentText = *req.ContentText
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("更新商品失败: %w", err)
	}
	return toProductInfo(product), nil
}

// DeleteProduct 删除商品（仅卖家本人或管理员）
func (s *CatalogService) DeleteProduct(ctx context.Context, auth *middleware.AuthContext, id int64) error {
	if _, err := s.authorizeProductWrite(ctx, auth, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *CatalogService) authorizeProductWrite(ctx context.Context, auth *middleware.AuthContext, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !auth.IsStaff && auth.UserID != product.SellerID {
		return nil, fmt.Errorf("只能操作自己发布的商品: %w", ErrForbidden)
	}
	return product, nil
}

func toProductInfo(p *model.Product) *dto.ProductInfo {
	return &dto.ProductInfo{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		SellerID:    p.SellerID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrCategoryExists  = fmt.Errorf("category with this name already exists: %w", ErrConflict)
	ErrProductNotFound = fmt.Errorf("product not found: %w", ErrNotFound)
	ErrInvalidPrice    = fmt.Errorf("price must be greater than zero: %w", ErrInvalidArgument)
)
