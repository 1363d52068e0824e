package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"digistore_v1/internal/api/dto"
	"digistore_v1/internal/middleware"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

// ==================== ReviewService 评价服务 ====================

// ReviewService 商品评价
// 约束：先购买后评价，每个用户对同一商品最多一条
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create 创建评价
func (s *ReviewService) Create(ctx context.Context, userID, productID int64, req *dto.CreateReviewRequest) (*dto.ReviewInfo, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Rating < model.RatingMin || req.Rating > model.RatingMax {
		return nil, ErrInvalidRating
	}

	// 评价资格 = 存在购买记录
	purchased, err := s.purchaseRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("查询购买记录失败: %w", err)
	}
	if !purchased {
		return nil, ErrNotPurchased
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("查询评价失败: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// 并发重复评价由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("创建评价失败: %w", err)
	}
	return toReviewInfo(review), nil
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(ctx context.Context, productID int64, skip, limit int) ([]dto.ReviewInfo, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询评价列表失败: %w", err)
	}
	list := make([]dto.ReviewInfo, len(reviews))
	for i := range reviews {
		list[i] = *toReviewInfo(&reviews[i])
	}
	return list, nil
}

// Update 更新评价（仅作者本人，管理员可代操作）
func (s *ReviewService) Update(ctx context.Context, auth *middleware.AuthContext, reviewID int64, req *dto.UpdateReviewRequest) (*dto.ReviewInfo, error) {
	review, err := s.ownedReview(ctx, auth, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if *req.Rating < model.RatingMin || *req.Rating > model.RatingMax {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("更新评价失败: %w", err)
	}
	return toReviewInfo(review), nil
}

// Delete 删除评价（仅作者本人，管理员可代操作）
func (s *ReviewService) Delete(ctx context.Context, auth *middleware.AuthContext, reviewID int64) error {
	if _, err := s.ownedReview(ctx, auth, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *ReviewService) ownedReview(ctx context.Context, auth *middleware.AuthContext, reviewID int64) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("查询评价失败: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if !auth.IsStaff && review.UserID != auth.UserID {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}

func toReviewInfo(r *model.Review) *dto.ReviewInfo {
	return &dto.ReviewInfo{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidRating   = fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidArgument)
	ErrNotPurchased    = fmt.Errorf("you can only review products you have purchased: %w", ErrForbidden)
	ErrAlreadyReviewed = fmt.Errorf("you have already reviewed this product: %w", ErrConflict)
	ErrReviewNotFound  = fmt.Errorf("review not found: %w", ErrNotFound)
	ErrNotReviewOwner  = fmt.Errorf("you can only modify your own reviews: %w", ErrForbidden)
)
