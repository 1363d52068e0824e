package repository

import (
	"context"

	"digistore_v1/internal/model"

	"gorm.io/gorm"
)

// ==================== PurchaseRepository 购买记录仓库 ====================

// PurchaseRepository 购买记录仓库接口
type PurchaseRepository interface {
	CreateBatch(ctx context.Context, purchases []model.Purchase) error
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Purchase, error)
	// ListByOrder 带商品预加载，用于已支付订单的内容下发
	ListByOrder(ctx context.Context, userID, orderID int64) ([]model.Purchase, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建购买记录仓库
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreateBatch(ctx context.Context, purchases []model.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&purchases).Error
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Purchase, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var purchases []model.Purchase
	err := query.Order("purchased_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) ListByOrder(ctx context.Context, userID, orderID int64) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}
